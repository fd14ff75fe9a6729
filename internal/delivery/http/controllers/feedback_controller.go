package controllers

import (
	"log/slog"
	"net/http"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

// SubmitFeedbackRequest is the request body for POST /feedback. Blank feedback is
// rejected by the service so the message matches regardless of client.
type SubmitFeedbackRequest struct {
	EventName string `json:"event_name" example:"GopherCon"`
	Feedback  string `json:"feedback" example:"Great talks!"`
}

type FeedbackController struct {
	Logger  *slog.Logger
	Service domain.FeedbackService
}

func NewFeedbackController(logger *slog.Logger, svc domain.FeedbackService) *FeedbackController {
	return &FeedbackController{Logger: logger, Service: svc}
}

// SubmitFeedback godoc
// @Summary Submit feedback
// @Description Accepts non-blank feedback and returns a receipt. Feedback is not stored.
// @Tags feedback
// @Accept json
// @Produce json
// @Param body body SubmitFeedbackRequest true "Feedback"
// @Success 202 {object} helpers.APIResponse "data contains the receipt"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /feedback [post]
func (c *FeedbackController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	receipt, err := c.Service.Submit(r.Context(), req.EventName, req.Feedback)
	if err != nil {
		status, code, known := helpers.ErrorStatus(err)
		if !known {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteJSONError(w, status, code, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusAccepted, receipt)
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
