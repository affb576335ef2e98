package services

import (
	"context"
	"errors"
	"strings"

	"github.com/moodlog/api/internal/models"
	"github.com/moodlog/api/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the email is unknown, so lookup misses
// and digest mismatches take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register creates a new account with a bcrypt password digest and returns
// the sanitized projection.
func Register(ctx context.Context, db *gorm.DB, email, password string) (models.SlimUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return models.SlimUser{}, types.NewValidation("email and password are required")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return models.SlimUser{}, storageError(err)
	}
	if count > 0 {
		return models.SlimUser{}, types.NewConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.SlimUser{}, storageError(err)
	}

	user := models.User{Email: email, Hash: string(hash)}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		// The pre-check races with concurrent registration; the unique index
		// on email is the authority.
		if isDuplicateKey(err) {
			return models.SlimUser{}, types.NewConflict("email already registered")
		}
		return models.SlimUser{}, storageError(err)
	}

	return user.Slim(), nil
}

// VerifyCredentials checks an email/password pair. Unknown email and wrong
// password both return types.ErrInvalidCredentials.
func VerifyCredentials(ctx context.Context, db *gorm.DB, email, password string) (models.SlimUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return models.SlimUser{}, types.ErrInvalidCredentials
		}
		return models.SlimUser{}, storageError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		return models.SlimUser{}, types.ErrInvalidCredentials
	}

	return user.Slim(), nil
}

// GetUser loads the sanitized projection of a user by id.
func GetUser(ctx context.Context, db *gorm.DB, userID uint) (models.SlimUser, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SlimUser{}, types.NewNotFound("user not found")
		}
		return models.SlimUser{}, storageError(err)
	}
	return user.Slim(), nil
}

// isDuplicateKey detects unique-index violations across the supported
// dialects without importing driver-specific error types.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
