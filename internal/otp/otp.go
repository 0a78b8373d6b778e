package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
)

var (
	ErrNoOtpPending = errors.New("no otp pending")
	ErrOtpExpired   = errors.New("otp expired")
	ErrOtpMismatch  = errors.New("otp mismatch")
)

// Purpose selects which OTP field pair on the user record a code belongs to.
type Purpose int

const (
	PurposeVerifyAccount Purpose = iota
	PurposeResetPassword
)

// Service generates and checks the short-lived numeric codes stored on user
// records. It mutates the user in memory only; persisting the change is the
// caller's job.
type Service struct {
	ttl time.Duration
	now func() time.Time
}

func NewService(ttlMinutes int) *Service {
	return &Service{
		ttl: time.Duration(ttlMinutes) * time.Minute,
		now: time.Now,
	}
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Generate returns a 6-digit code uniformly sampled from 100000-999999.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue stores a fresh code and its expiry on the field pair for the purpose
// and returns the code for delivery.
func (s *Service) Issue(u *models.User, purpose Purpose) (string, error) {
	code, err := Generate()
	if err != nil {
		return "", err
	}
	expireAt := s.now().Add(s.ttl)
	switch purpose {
	case PurposeVerifyAccount:
		u.VerificationOtp = code
		u.VerificationOtpExpireAt = &expireAt
	case PurposeResetPassword:
		u.ResetPasswordOtp = code
		u.ResetPasswordOtpExpireAt = &expireAt
		u.IsResetOtpValidated = false
	}
	return code, nil
}

// Validate checks submitted against the stored pair. Expired codes are cleared
// so a fresh issue is required before retrying; a consumed code never
// validates twice. For the reset purpose a successful validation arms the
// one-time reset authorization consumed by the password change.
func (s *Service) Validate(u *models.User, purpose Purpose, submitted string) error {
	stored, expireAt := s.fields(u, purpose)
	if stored == "" {
		return ErrNoOtpPending
	}
	if expireAt == nil || s.now().After(*expireAt) {
		s.clear(u, purpose)
		return ErrOtpExpired
	}
	if stored != submitted {
		return ErrOtpMismatch
	}
	s.clear(u, purpose)
	if purpose == PurposeResetPassword {
		u.IsResetOtpValidated = true
	}
	return nil
}

func (s *Service) fields(u *models.User, purpose Purpose) (string, *time.Time) {
	if purpose == PurposeResetPassword {
		return u.ResetPasswordOtp, u.ResetPasswordOtpExpireAt
	}
	return u.VerificationOtp, u.VerificationOtpExpireAt
}

func (s *Service) clear(u *models.User, purpose Purpose) {
	if purpose == PurposeResetPassword {
		u.ResetPasswordOtp = ""
		u.ResetPasswordOtpExpireAt = nil
		return
	}
	u.VerificationOtp = ""
	u.VerificationOtpExpireAt = nil
}
