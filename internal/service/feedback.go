package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
	"github.com/papertrail/storefront/internal/telemetry"
)

// FeedbackService records customer messages from the contact form.
type FeedbackService interface {
	Submit(ctx context.Context, userID *int64, params domain.FeedbackParams) (domain.Feedback, error)
	List(ctx context.Context, limit int) ([]domain.Feedback, error)
}

type feedbackService struct {
	store    repository.Store
	validate *validator.Validate
	metrics  *telemetry.BusinessMetrics
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(store repository.Store, metrics *telemetry.BusinessMetrics) FeedbackService {
	return &feedbackService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		metrics:  metrics,
	}
}

func (s *feedbackService) Submit(ctx context.Context, userID *int64, params domain.FeedbackParams) (domain.Feedback, error) {
	const op = "feedback.submit"

	if err := s.validate.Struct(params); err != nil {
		validation := domain.NewValidationError(op)
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				validation.AddFieldError(strings.ToLower(fe.Field()), feedbackFieldMessage(fe))
			}
		} else {
			validation.AddFieldError("input", "Invalid feedback")
		}
		return domain.Feedback{}, validation
	}

	feedback, err := s.store.CreateFeedback(ctx, repository.CreateFeedbackParams{
		UserID:  userID,
		Name:    strings.TrimSpace(params.Name),
		Email:   strings.TrimSpace(params.Email),
		Message: params.Message,
	})
	if err != nil {
		return domain.Feedback{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to save feedback")
	}

	if s.metrics != nil {
		s.metrics.FeedbackReceived.Inc()
	}
	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	const op = "feedback.list"

	items, err := s.store.ListFeedback(ctx, limit)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load feedback")
	}
	return items, nil
}

func feedbackFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "max":
		return "Value is too long"
	default:
		return "Invalid value"
	}
}
