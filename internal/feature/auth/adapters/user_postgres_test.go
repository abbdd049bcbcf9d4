package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError matches the production gorm configuration so unique
// violations surface as gorm.ErrDuplicatedKey here as well.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func newTestUser(email string) *entity.User {
	return &entity.User{
		Name:     "John Doe",
		Email:    email,
		Password: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
	}
}

func TestNewUserPostgres(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserPostgres(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserPostgres_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		user := newTestUser("test@example.com")
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email yields the sentinel error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		err := repo.Create(context.Background(), newTestUser("duplicate@example.com"))
		require.NoError(t, err, "failed to create first user")

		err = repo.Create(context.Background(), newTestUser("duplicate@example.com"))
		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)

		// 最初のユーザーだけが残っていること
		var count int64
		require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
		assert.EqualValues(t, 1, count, "duplicate registration created a second row")
	})

	t.Run("email is stored case-sensitively", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		require.NoError(t, repo.Create(context.Background(), newTestUser("Case@Example.com")))

		_, err := repo.FindByEmail(context.Background(), "case@example.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "lookup should not normalize case")
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	t.Run("find user by email successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		created := newTestUser("test@example.com")
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByEmail(context.Background(), "test@example.com")

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "John Doe", found.Name)
		// ログイン検証のためハッシュを含む全フィールドが取得されること
		assert.Equal(t, created.Password, found.Password)
	})

	t.Run("user not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		_, err := repo.FindByEmail(context.Background(), "missing@example.com")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	t.Run("returns the safe projection", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		created := newTestUser("test@example.com")
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByID(context.Background(), created.ID)

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.Name, found.Name)
		assert.Equal(t, created.Email, found.Email)
		assert.Equal(t, created.CreatedAt.Unix(), found.CreatedAt.Unix())
	})

	t.Run("user not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		_, err := repo.FindByID(context.Background(), 999)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserPostgres_ExistsByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)

	require.NoError(t, repo.Create(context.Background(), newTestUser("present@example.com")))

	exists, err := repo.ExistsByEmail(context.Background(), "present@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(context.Background(), "absent@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
