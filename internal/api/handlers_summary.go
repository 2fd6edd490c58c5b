package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclenote/internal/services"
)

type periodStartInput struct {
	StartDate string `json:"start_date" form:"start_date"`
}

func (handler *Handler) GetSummary(c *fiber.Ctx) error {
	summary, err := handler.summaries.Summarize(c.UserContext(), handler.currentTime())
	if err != nil {
		handler.log.WithError(err).Error("summarize period history failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load summary")
	}
	return c.JSON(summary)
}

func (handler *Handler) CreatePeriodStart(c *fiber.Ctx) error {
	if !handler.submitLimiter.allow(requestLimiterKey(c), handler.currentTime()) {
		return apiError(c, fiber.StatusTooManyRequests, "too many submissions")
	}

	input := periodStartInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	saved, err := handler.summaries.Record(c.UserContext(), input.StartDate)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		handler.log.WithError(err).Error("append period start failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save date")
	}
	handler.log.WithField("start_date", saved).Info("period start recorded")

	summary, err := handler.summaries.Summarize(c.UserContext(), handler.currentTime())
	if err != nil {
		handler.log.WithError(err).Error("summarize period history failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load summary")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"saved":   saved,
		"summary": summary,
	})
}
