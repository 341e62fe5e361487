package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/ievms-go-api/internal/models"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: models.RoleEvaluator}
	require.NoError(t, repo.Create(context.Background(), &user))
	require.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", byID.Name)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	first := models.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hash", Role: models.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), &first))

	second := models.User{Name: "Impostor", Email: "bob@example.com", PasswordHash: "hash", Role: models.RoleEvaluator}
	err := repo.Create(context.Background(), &second)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "bob@example.com").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUserRepositoryListByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	users := []models.User{
		{Name: "Carol", Email: "carol@example.com", PasswordHash: "hash", Role: models.RoleEvaluator},
		{Name: "Dave", Email: "dave@example.com", PasswordHash: "hash", Role: models.RoleEvaluator},
	}
	for i := range users {
		require.NoError(t, repo.Create(context.Background(), &users[i]))
	}

	found, err := repo.ListByIDs(context.Background(), []uint{users[0].ID, users[1].ID, 9999})
	require.NoError(t, err)
	require.Len(t, found, 2)

	found, err = repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, found)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Evaluation{}))
	return db
}
