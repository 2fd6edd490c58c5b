package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclenote/internal/services"
)

type windowsView struct {
	SafeBefore string
	Fertile    string
	SafeAfter  string
	Degenerate bool
}

type indexForm struct {
	Value string
	Error string
}

func (handler *Handler) buildIndexViewData(c *fiber.Ctx, summary services.Summary, form indexForm, flash FlashPayload) fiber.Map {
	language := handler.currentLanguage(c)
	messages := handler.currentMessages(c)

	data := fiber.Map{
		"Lang":       language,
		"Languages":  handler.i18n.SupportedLanguages(),
		"Messages":   messages,
		"CSRFToken":  csrfToken(c),
		"Today":      summary.Today,
		"Dates":      summary.Dates,
		"ChartData":  summary.Chart,
		"ChartTitle": templateTranslate(messages, "summary.chart_title"),
		"FormValue":  form.Value,
		"FormError":  form.Error,
	}

	if flash.SavedDate != "" {
		data["Flash"] = handler.i18n.Translatef(language, "form.saved", flash.SavedDate)
	}
	if summary.PredictedNext != nil {
		data["PredictedNext"] = *summary.PredictedNext
	}
	if summary.AverageCycle != nil {
		data["AverageCycleText"] = handler.i18n.Translatef(language, "summary.days", *summary.AverageCycle)
	}
	if summary.Windows != nil {
		data["Windows"] = windowsView{
			SafeBefore: handler.localizedRange(language, summary.Windows.SafeBefore),
			Fertile:    handler.localizedRange(language, summary.Windows.Fertile),
			SafeAfter:  handler.localizedRange(language, summary.Windows.SafeAfter),
			Degenerate: summary.Windows.Degenerate,
		}
	}
	if summary.Alert != nil {
		data["AlertText"] = handler.alertText(language, summary.Alert)
	}
	return data
}

func (handler *Handler) localizedRange(language string, value services.DateRange) string {
	start, end := value.Strings()
	return handler.i18n.Translatef(language, "summary.range", start, end)
}

func (handler *Handler) alertText(language string, alert *services.IrregularityAlert) string {
	return handler.i18n.Translatef(language, "alert."+string(alert.Kind), alert.Days)
}
