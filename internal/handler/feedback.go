package handler

import (
	"net/http"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/service"
)

// FeedbackHandler accepts contact-form submissions. Signed-in users are
// linked to their message; anonymous submissions are accepted too.
type FeedbackHandler struct {
	feedback service.FeedbackService
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(feedback service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit handles POST /feedback.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var params domain.FeedbackParams
	if err := decodeJSON(r, &params); err != nil {
		RespondError(w, r, err)
		return
	}

	var userID *int64
	if user := domain.UserFromContext(r.Context()); user != nil {
		userID = &user.ID
	}

	feedback, err := h.feedback.Submit(r.Context(), userID, params)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, feedback)
}
