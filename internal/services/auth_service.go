package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/otp"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/repository"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/token"
)

// AuthService orchestrates registration, sessions, OTP verification and
// password reset over the user store.
type AuthService struct {
	users    repository.UserRepository
	tokens   *token.Manager
	otps     *otp.Service
	mailer   Mailer
	limiter  RateLimiter
	images   ImageStore
	hashCost int
	logger   *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *token.Manager,
	otps *otp.Service,
	mailer Mailer,
	limiter RateLimiter,
	images ImageStore,
	hashCost int,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		otps:     otps,
		mailer:   mailer,
		limiter:  limiter,
		images:   images,
		hashCost: hashCost,
		logger:   logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account. The welcome email is best-effort: a
// send failure never rolls the registration back.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mailer.SendWelcomeEmail(sendCtx, user.Email, user.Name); err != nil {
			s.logger.Warn("welcome email not sent", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	return user, nil
}

// Login checks credentials and, for verified accounts, opens a session: both
// tokens are issued and the refresh token is persisted on the user record.
func (s *AuthService) Login(ctx context.Context, email, password string) (user *models.User, access, refresh string, err error) {
	user, err = s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", "", ErrUserNotFound
		}
		return nil, "", "", fmt.Errorf("failed to find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !user.IsAccountVerified {
		return user, "", "", ErrAccountUnverified
	}

	access, err = s.tokens.IssueAccessToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err = s.tokens.IssueRefreshToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	user.RefreshToken = refresh
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return user, access, refresh, nil
}

// Refresh mints a new access token for a valid refresh token. The refresh
// token itself is not rotated; logout is the only thing that revokes it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrNoToken
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUnrecognizedToken
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if _, err := s.tokens.VerifyRefreshToken(refreshToken); err != nil {
		return "", err
	}

	access, err := s.tokens.IssueAccessToken(user.ID.Hex(), user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return access, nil
}

// Logout revokes the stored refresh token if the presented one matches a
// user. It succeeds even with no session.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up refresh token: %w", err)
	}
	user.RefreshToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// CreateAdmin registers an admin account. Only owners may call it; the admin
// starts verified since it is provisioned by a trusted party.
func (s *AuthService) CreateAdmin(ctx context.Context, callerID primitive.ObjectID, name, email, password string) (*models.User, error) {
	caller, err := s.findUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanCreateAdmins() {
		return nil, ErrForbidden
	}

	email = normalizeEmail(email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.User{
		Name:              name,
		Email:             email,
		PasswordHash:      string(hashed),
		Role:              models.RoleAdmin,
		IsAccountVerified: true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (s *AuthService) Dashboard(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.findUser(ctx, userID)
}

// ListAdmins returns all admin accounts. Owner only.
func (s *AuthService) ListAdmins(ctx context.Context, callerID primitive.ObjectID) ([]models.User, error) {
	caller, err := s.findUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanCreateAdmins() {
		return nil, ErrForbidden
	}
	return s.users.FindByRole(ctx, models.RoleAdmin)
}

// SendVerificationOtp issues a fresh account-verification code and emails it.
func (s *AuthService) SendVerificationOtp(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAccountVerified {
		return ErrAlreadyVerified
	}
	if err := s.limiter.Allow(ctx, user.Email); err != nil {
		return err
	}

	code, err := s.otps.Issue(user, otp.PurposeVerifyAccount)
	if err != nil {
		return fmt.Errorf("failed to issue otp: %w", err)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist otp: %w", err)
	}
	if err := s.mailer.SendVerificationOtp(ctx, user.Email, user.Name, code, s.otps.TTL()); err != nil {
		return fmt.Errorf("failed to send verification otp: %w", err)
	}
	return nil
}

// VerifyAccount consumes the verification code and flips the account to
// verified.
func (s *AuthService) VerifyAccount(ctx context.Context, userID primitive.ObjectID, code string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAccountVerified {
		return ErrAlreadyVerified
	}

	if err := s.otps.Validate(user, otp.PurposeVerifyAccount, code); err != nil {
		if errors.Is(err, otp.ErrOtpExpired) {
			// persist the cleared pair so a fresh send is required
			if uerr := s.users.Update(ctx, user); uerr != nil {
				s.logger.Warn("failed to clear expired otp", zap.Error(uerr))
			}
		}
		return err
	}

	user.IsAccountVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist verification: %w", err)
	}
	return nil
}

// SendResetOtp issues a password-reset code for the account with the given
// email and emails it.
func (s *AuthService) SendResetOtp(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if err := s.limiter.Allow(ctx, user.Email); err != nil {
		return nil, err
	}

	code, err := s.otps.Issue(user, otp.PurposeResetPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to issue otp: %w", err)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist otp: %w", err)
	}
	if err := s.mailer.SendResetOtp(ctx, user.Email, user.Name, code, s.otps.TTL()); err != nil {
		return nil, fmt.Errorf("failed to send reset otp: %w", err)
	}
	return user, nil
}

// ValidateResetOtp consumes the reset code and arms the one-time reset
// authorization.
func (s *AuthService) ValidateResetOtp(ctx context.Context, userID primitive.ObjectID, code string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.otps.Validate(user, otp.PurposeResetPassword, code); err != nil {
		if errors.Is(err, otp.ErrOtpExpired) {
			if uerr := s.users.Update(ctx, user); uerr != nil {
				s.logger.Warn("failed to clear expired otp", zap.Error(uerr))
			}
		}
		return err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist otp validation: %w", err)
	}
	return nil
}

// ResetPassword stores a new password hash for an account whose reset was
// authorized by ValidateResetOtp. The authorization is consumed and the
// current session is revoked.
func (s *AuthService) ResetPassword(ctx context.Context, userID primitive.ObjectID, password, confirmPassword string) error {
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsResetOtpValidated {
		return ErrResetNotAuthorized
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	user.IsResetOtpValidated = false
	user.RefreshToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist new password: %w", err)
	}
	return nil
}

// UploadProfilePicture replaces the user's profile picture, removing the
// previous object best-effort.
func (s *AuthService) UploadProfilePicture(ctx context.Context, userID primitive.ObjectID, filename, contentType string, data []byte) (*models.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	img, err := storeImage(ctx, s.images, ImageFile{Filename: filename, ContentType: contentType, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	old := user.ProfilePicture
	user.ProfilePicture = &img
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist profile picture: %w", err)
	}

	if old != nil {
		for _, key := range []string{old.Key, old.ThumbnailKey} {
			if key == "" {
				continue
			}
			if derr := s.images.Delete(ctx, key); derr != nil {
				s.logger.Warn("failed to delete old profile picture", zap.String("key", key), zap.Error(derr))
			}
		}
	}
	return user, nil
}

func (s *AuthService) findUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
