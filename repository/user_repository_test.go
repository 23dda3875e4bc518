package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"skysage.app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserProfile{}, &models.Credential{}))
	return db
}

func TestUserProfileRepository_PutAndGet(t *testing.T) {
	repo := NewUserProfileRepository(setupTestDB(t))

	profile := &models.UserProfile{
		UID:   "uid-1",
		Name:  "Test User",
		Email: "user@example.com",
	}
	require.NoError(t, repo.Put(profile))

	found, err := repo.GetByID("uid-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Test User", found.Name)

	found, err = repo.FindByEmail("user@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "uid-1", found.UID)
}

func TestUserProfileRepository_PutReplaces(t *testing.T) {
	repo := NewUserProfileRepository(setupTestDB(t))

	require.NoError(t, repo.Put(&models.UserProfile{UID: "uid-1", Name: "Old Name", Email: "user@example.com"}))
	require.NoError(t, repo.Put(&models.UserProfile{UID: "uid-1", Name: "New Name", Email: "user@example.com"}))

	found, err := repo.GetByID("uid-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "New Name", found.Name)
}

func TestUserProfileRepository_MissingRecords(t *testing.T) {
	repo := NewUserProfileRepository(setupTestDB(t))

	found, err := repo.FindByEmail("ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.GetByID("missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCredentialRepository_CreateAndFind(t *testing.T) {
	repo := NewCredentialRepository(setupTestDB(t))

	credential := &models.Credential{
		UID:          "uid-1",
		Email:        "user@example.com",
		Salt:         "salt",
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(credential))

	found, err := repo.FindByEmail("user@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "uid-1", found.UID)
	assert.Equal(t, "hash", found.PasswordHash)

	found, err = repo.FindByEmail("ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCredentialRepository_DuplicateEmailRejected(t *testing.T) {
	repo := NewCredentialRepository(setupTestDB(t))

	require.NoError(t, repo.Create(&models.Credential{UID: "uid-1", Email: "user@example.com", Salt: "s", PasswordHash: "h"}))
	err := repo.Create(&models.Credential{UID: "uid-2", Email: "user@example.com", Salt: "s", PasswordHash: "h"})
	assert.Error(t, err)
}
