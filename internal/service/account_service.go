// Package service contains the business logic layer.
package service

import (
	"context"
	"math/rand/v2"
	"time"

	"mosaic/internal/mailer"
	"mosaic/internal/middleware"
	"mosaic/internal/models"
	"mosaic/internal/repository"
	"mosaic/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	verificationCodeLength  = 8
	verificationCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	mailTimeout             = 15 * time.Second
)

// AccountService handles registration, authentication and email verification.
type AccountService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	mail        mailer.Mailer
}

type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	Birthday        *time.Time
	Country         string
	City            string
}

type UpdateProfileInput struct {
	UserID   uint
	Birthday *time.Time
	Country  *string
	City     *string
}

func NewAccountService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	mail mailer.Mailer,
) *AccountService {
	return &AccountService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		mail:        mail,
	}
}

// Register creates a user together with an unverified profile and dispatches
// the verification code by email. The user and profile are created in one
// transaction so a failed profile insert never leaves an orphaned user.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password, in.PasswordConfirm); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}
	profile := &models.Profile{
		VerifiedCode: GenerateVerificationCode(),
		Birthday:     in.Birthday,
		Country:      in.Country,
		City:         in.City,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		if repository.IsUniqueConstraintError(err) {
			return nil, models.NewValidationError("Email already registered")
		}
		return nil, models.NewInternalError(err)
	}

	user.Profile = profile
	s.dispatchVerificationEmail(user.Email, profile.VerifiedCode)
	return user, nil
}

// dispatchVerificationEmail sends the code in the background. Registration
// already committed; a delivery failure is logged, not surfaced.
func (s *AccountService) dispatchVerificationEmail(email, code string) {
	if s.mail == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := s.mail.SendVerificationCode(ctx, email, code); err != nil {
			middleware.Logger.Warn("failed to send verification email",
				"email", email, "error", err)
		}
	}()
}

// Authenticate verifies credentials. Unknown email, wrong password and
// deactivated account all return (nil, nil) so callers cannot distinguish
// which check failed.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

// VerifyEmail checks the submitted code against the profile's stored code and
// marks the profile verified on match. Verifying an already verified profile
// is a no-op success.
func (s *AccountService) VerifyEmail(ctx context.Context, userID uint, code string) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile.VerifiedEmail {
		return nil
	}
	if code == "" || code != profile.VerifiedCode {
		return models.NewValidationError("Invalid verification code")
	}
	return s.profileRepo.MarkVerified(ctx, profile.ID)
}

// VerificationStatus reports whether the user's email has been verified.
func (s *AccountService) VerificationStatus(ctx context.Context, userID uint) (bool, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile.VerifiedEmail, nil
}

// GetProfile returns the profile for the given user.
func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies partial profile updates. Nil fields are untouched.
func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Birthday != nil {
		profile.Birthday = in.Birthday
	}
	if in.Country != nil {
		if len(*in.Country) > 100 {
			return nil, models.NewValidationError("Country too long (max 100 characters)")
		}
		profile.Country = *in.Country
	}
	if in.City != nil {
		if len(*in.City) > 100 {
			return nil, models.NewValidationError("City too long (max 100 characters)")
		}
		profile.City = *in.City
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GenerateVerificationCode returns a fresh random uppercase code.
func GenerateVerificationCode() string {
	code := make([]byte, verificationCodeLength)
	for i := range code {
		code[i] = verificationCodeCharset[rand.IntN(len(verificationCodeCharset))]
	}
	return string(code)
}
