package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclenote/internal/services"
)

func (handler *Handler) ShowIndex(c *fiber.Ctx) error {
	summary, err := handler.summaries.Summarize(c.UserContext(), handler.currentTime())
	if err != nil {
		handler.log.WithError(err).Error("summarize period history failed")
		return c.Status(fiber.StatusInternalServerError).SendString(templateTranslate(handler.currentMessages(c), "error.summary_failed"))
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "index", handler.buildIndexViewData(c, summary, indexForm{}, flash))
}

func (handler *Handler) SubmitPeriodStart(c *fiber.Ctx) error {
	raw := c.FormValue("start_date")
	if !handler.submitLimiter.allow(requestLimiterKey(c), handler.currentTime()) {
		return handler.rejectSubmission(c, fiber.StatusTooManyRequests, "too many submissions", "form.rate_limited", raw)
	}

	saved, err := handler.summaries.Record(c.UserContext(), raw)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return handler.rejectSubmission(c, fiber.StatusBadRequest, "invalid date", "form.invalid_date", raw)
		}
		handler.log.WithError(err).Error("append period start failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save date")
	}

	handler.log.WithField("start_date", saved).Info("period start recorded")
	handler.setFlashCookie(c, FlashPayload{SavedDate: saved})
	return redirectOrJSON(c, "/")
}

// rejectSubmission re-renders the form for browsers and returns a JSON error otherwise.
func (handler *Handler) rejectSubmission(c *fiber.Ctx, status int, message string, messageKey string, raw string) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}

	summary, err := handler.summaries.Summarize(c.UserContext(), handler.currentTime())
	if err != nil {
		handler.log.WithError(err).Error("summarize period history failed")
		return c.Status(status).SendString(templateTranslate(handler.currentMessages(c), messageKey))
	}

	form := indexForm{
		Value: raw,
		Error: templateTranslate(handler.currentMessages(c), messageKey),
	}
	c.Status(status)
	return handler.render(c, "index", handler.buildIndexViewData(c, summary, form, FlashPayload{}))
}
