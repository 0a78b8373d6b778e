package services

import (
	"context"
	"errors"
	"time"
)

// Domain errors raised by the flow controllers. Handlers translate these to
// HTTP statuses; anything unlisted is logged and surfaced as a generic 500.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPizzaNotFound      = errors.New("pizza not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountUnverified  = errors.New("account not verified")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrNoToken            = errors.New("no token")
	ErrUnrecognizedToken  = errors.New("token not recognized")
	ErrMissingImages      = errors.New("at least one image is required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrResetNotAuthorized = errors.New("password reset not authorized")
	ErrOtpRateLimited     = errors.New("too many otp requests, try again later")
	ErrPizzaUnavailable   = errors.New("pizza is not available")
	ErrItemNotFound       = errors.New("item not in cart")
)

// Mailer is the transactional-email collaborator.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendVerificationOtp(ctx context.Context, toEmail, name, code string, ttl time.Duration) error
	SendResetOtp(ctx context.Context, toEmail, name, code string, ttl time.Duration) error
}

// ImageStore is the media-hosting collaborator.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (url, key string, err error)
	Delete(ctx context.Context, key string) error
}

// RateLimiter bounds how often a keyed action may run. Allow returns
// ErrOtpRateLimited once the hourly allowance is used up.
type RateLimiter interface {
	Allow(ctx context.Context, key string) error
}
