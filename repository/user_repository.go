// Package repository implements the data access layer for the user backend.
package repository

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"skysage.app/models"
)

// UserProfileRepository handles the user-profile documents written at sign-up.
type UserProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository creates a repository for user profiles.
func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

// Put writes or replaces the profile document keyed by its UID.
func (r *UserProfileRepository) Put(profile *models.UserProfile) error {
	slog.Debug("UserProfileRepository.Put", "uid", profile.UID, "email", profile.Email)

	result := r.db.Save(profile)
	if result.Error != nil {
		slog.Error("Database error when saving profile", "error", result.Error)
		return result.Error
	}
	return nil
}

// FindByEmail retrieves a profile by email, or nil when none exists.
func (r *UserProfileRepository) FindByEmail(email string) (*models.UserProfile, error) {
	slog.Debug("UserProfileRepository.FindByEmail", "email", email)

	var profile models.UserProfile
	result := r.db.Where("email = ?", email).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Database error when finding profile by email", "error", result.Error)
		return nil, result.Error
	}
	return &profile, nil
}

// GetByID retrieves a profile by UID, or nil when none exists.
func (r *UserProfileRepository) GetByID(uid string) (*models.UserProfile, error) {
	slog.Debug("UserProfileRepository.GetByID", "uid", uid)

	var profile models.UserProfile
	result := r.db.Where("uid = ?", uid).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Database error when finding profile by id", "error", result.Error)
		return nil, result.Error
	}
	return &profile, nil
}

// CredentialRepository handles the authentication records behind the identity
// provider.
type CredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a repository for credentials.
func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create persists a new credential record.
func (r *CredentialRepository) Create(credential *models.Credential) error {
	slog.Debug("CredentialRepository.Create", "uid", credential.UID, "email", credential.Email)

	result := r.db.Create(credential)
	if result.Error != nil {
		slog.Error("Database error when creating credential", "error", result.Error)
		return result.Error
	}
	return nil
}

// FindByEmail retrieves a credential by email, or nil when none exists.
func (r *CredentialRepository) FindByEmail(email string) (*models.Credential, error) {
	slog.Debug("CredentialRepository.FindByEmail", "email", email)

	var credential models.Credential
	result := r.db.Where("email = ?", email).First(&credential)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Database error when finding credential", "error", result.Error)
		return nil, result.Error
	}
	return &credential, nil
}
