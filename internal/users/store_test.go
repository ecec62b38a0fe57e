package users

import (
	"path/filepath"
	"testing"

	"github.com/pizzaria-dev/pizzaria/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}))

	return NewStore(database)
}

func TestCreateAndFindByEmail(t *testing.T) {
	store := newTestStore(t)

	user, err := store.Create("Maria", "Maria@Example.com ", "supersecret", true, false)
	require.NoError(t, err)
	require.Equal(t, "maria@example.com", user.Email)
	require.True(t, user.Active)
	require.False(t, user.Admin)
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NotContains(t, user.PasswordHash, "supersecret")

	found, err := store.FindByEmail("maria@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, user.ID, found.ID)

	missing, err := store.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestCreateDuplicateEmail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("Maria", "maria@example.com", "supersecret", true, false)
	require.NoError(t, err)

	_, err = store.Create("Other Maria", "maria@example.com", "differentpass", true, false)
	require.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, store.db.Model(&models.User{}).Where("email = ?", "maria@example.com").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAuthenticate(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Maria", "maria@example.com", "supersecret", true, false)
	require.NoError(t, err)

	user, err := store.Authenticate("maria@example.com", "supersecret")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, created.ID, user.ID)
}

func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("Maria", "maria@example.com", "supersecret", true, false)
	require.NoError(t, err)

	wrongPassword, err := store.Authenticate("maria@example.com", "wrong")
	require.NoError(t, err)

	unknownEmail, err := store.Authenticate("nobody@example.com", "supersecret")
	require.NoError(t, err)

	require.Nil(t, wrongPassword)
	require.Nil(t, unknownEmail)
}
