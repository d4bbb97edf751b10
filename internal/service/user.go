package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/papertrail/storefront/internal/auth"
	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
	"github.com/papertrail/storefront/internal/telemetry"
)

// UserService handles registration, login, and session resolution.
type UserService interface {
	// Register creates an account and logs it in on the given session.
	Register(ctx context.Context, sessionToken string, input domain.RegisterInput) (domain.User, error)

	// Login verifies credentials, binds the session to the account, and
	// merges any anonymous cart into the account cart.
	Login(ctx context.Context, sessionToken string, input domain.LoginInput) (domain.User, error)

	// Logout detaches the session.
	Logout(ctx context.Context, sessionToken string) error

	// EnsureSession returns a valid session for the token, minting a new
	// anonymous session when the token is empty, unknown, or expired.
	EnsureSession(ctx context.Context, token string, ttl time.Duration) (domain.Session, error)

	// UserBySession resolves the logged-in user for a session, if any.
	UserBySession(ctx context.Context, token string) (*domain.User, error)

	// PurgeExpiredSessions removes sessions past their expiry.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type userService struct {
	store    repository.Store
	carts    CartService
	validate *validator.Validate
	metrics  *telemetry.BusinessMetrics
}

// NewUserService creates a UserService. The cart service is needed to
// merge anonymous carts at login.
func NewUserService(store repository.Store, carts CartService, metrics *telemetry.BusinessMetrics) UserService {
	return &userService{
		store:    store,
		carts:    carts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		metrics:  metrics,
	}
}

func (s *userService) Register(ctx context.Context, sessionToken string, input domain.RegisterInput) (domain.User, error) {
	const op = "user.register"

	if err := s.validate.Struct(input); err != nil {
		validation := domain.NewValidationError(op)
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				validation.AddFieldError(strings.ToLower(fe.Field()), registerFieldMessage(fe))
			}
		} else {
			validation.AddFieldError("input", "Invalid registration input")
		}
		return domain.User{}, validation
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			validation := domain.NewValidationError(op)
			validation.AddFieldError("password", "Password must be at least 8 characters")
			return domain.User{}, validation
		}
		return domain.User{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to hash password")
	}

	user, err := s.store.CreateUser(ctx, repository.CreateUserParams{
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:  hash,
		FullName:      strings.TrimSpace(input.FullName),
		ContactNumber: input.ContactNumber,
		HouseAddress:  input.HouseAddress,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to create account")
	}

	if err := s.bindSession(ctx, sessionToken, user.ID); err != nil {
		return domain.User{}, err
	}

	if s.metrics != nil {
		s.metrics.Signups.Inc()
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, sessionToken string, input domain.LoginInput) (domain.User, error) {
	const op = "user.login"

	if err := s.validate.Struct(input); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.loginFailed()
			return domain.User{}, ErrUnknownEmail
		}
		return domain.User{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load account")
	}

	if err := auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		s.loginFailed()
		return domain.User{}, ErrIncorrectPassword
	}

	if err := s.bindSession(ctx, sessionToken, user.ID); err != nil {
		return domain.User{}, err
	}

	if s.metrics != nil {
		s.metrics.Logins.Inc()
	}
	return user, nil
}

// bindSession attaches the session to the account and merges the
// session's anonymous cart into the account cart.
func (s *userService) bindSession(ctx context.Context, sessionToken string, userID int64) error {
	const op = "user.login"

	if sessionToken == "" {
		return nil
	}

	if err := s.store.AttachSessionUser(ctx, sessionToken, userID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.WrapError(err, domain.EINTERNAL, op, "Unable to bind session")
		}
		return nil
	}

	return s.carts.MergeOnLogin(ctx, sessionToken, userID)
}

func (s *userService) Logout(ctx context.Context, sessionToken string) error {
	const op = "user.logout"

	if sessionToken == "" {
		return nil
	}
	if err := s.store.DeleteSession(ctx, sessionToken); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, op, "Unable to end session")
	}
	return nil
}

func (s *userService) EnsureSession(ctx context.Context, token string, ttl time.Duration) (domain.Session, error) {
	const op = "user.session"

	if token != "" {
		session, err := s.store.GetSessionByToken(ctx, token)
		if err == nil && !session.Expired(time.Now()) {
			return session, nil
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return domain.Session{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load session")
		}
	}

	fresh, err := auth.NewSessionToken()
	if err != nil {
		return domain.Session{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to mint session token")
	}

	session, err := s.store.CreateSession(ctx, repository.CreateSessionParams{
		Token:     fresh,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return domain.Session{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to create session")
	}
	return session, nil
}

func (s *userService) UserBySession(ctx context.Context, token string) (*domain.User, error) {
	const op = "user.session"

	if token == "" {
		return nil, nil
	}

	session, err := s.store.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load session")
	}
	if session.Expired(time.Now()) || session.UserID == nil {
		return nil, nil
	}

	user, err := s.store.GetUserByID(ctx, *session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load account")
	}
	return &user, nil
}

func (s *userService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	const op = "user.purge"

	n, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, domain.WrapError(err, domain.EINTERNAL, op, "Unable to purge sessions")
	}
	return n, nil
}

func (s *userService) loginFailed() {
	if s.metrics != nil {
		s.metrics.LoginFailed.Inc()
	}
}

func registerFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	default:
		return "Invalid value"
	}
}
