package domain

// CheckoutInput is the buyer-supplied form payload handed to the checkout
// orchestrator. Validation tags are enforced with go-playground/validator
// before any store mutation happens.
type CheckoutInput struct {
	FullName      string `json:"full_name" validate:"required,max=150"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Address       string `json:"address" validate:"required,max=500"`
	PaymentMethod string `json:"payment_method" validate:"required,max=50"`
}
