package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclenote/internal/services"
)

var exportCSVHeaders = []string{"start_date", "cycle_length_days"}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	now := handler.currentTime()
	summary, err := handler.summaries.Summarize(c.UserContext(), now)
	if err != nil {
		handler.log.WithError(err).Error("summarize period history failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch dates")
	}

	history, err := services.BuildCycleHistory(summary.Dates)
	if err != nil {
		handler.log.WithError(err).Error("build cycle history failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(exportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	for _, entry := range history {
		cycleLength := ""
		if !entry.First {
			cycleLength = strconv.Itoa(entry.CycleLength)
		}
		if err := writer.Write([]string{entry.StartDate, cycleLength}); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "cyclenote-"+now.Format("2006-01-02")+".csv"))
	return c.Send(output.Bytes())
}
