package domain

import "time"

// Feedback is a customer message submitted through the contact form.
// Signed-in submissions carry the user id; guest submissions do not.
type Feedback struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackParams holds the fields of a feedback submission.
type FeedbackParams struct {
	Name    string `json:"name" validate:"required,max=150"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,max=2000"`
}
