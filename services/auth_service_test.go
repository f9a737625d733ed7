package services

import (
	"context"
	"testing"
	"time"

	"music-lab/auth"
	"music-lab/errors"
	"music-lab/repositories"
	"music-lab/search"

	"github.com/mama165/sdk-go/database"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "Str0ng&Secret-Password!"
)

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", "music-lab", "music-lab-clients", time.Hour)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	index, err := search.NewUserIndex(t.TempDir(), log)
	req.NoError(err)
	defer func() { req.NoError(index.Close()) }()

	users := repositories.NewUserRepository(badgerDB)
	tokens := newTestTokenManager()
	service := NewAuthService(log, users, tokens, index)

	// When registering
	token, err := service.Register("alice@example.com", "alice", testPassword)
	req.NoError(err)
	req.NotEmpty(token)

	// Then the issued token resolves to the stored user
	userID, err := tokens.ValidateToken(string(token))
	req.NoError(err)
	user, err := users.GetByID(userID)
	req.NoError(err)
	req.Equal("alice", user.Username)

	// And the plain password is never stored
	req.NotEqual(testPassword, user.PasswordHash)

	// And the new user is searchable
	ids, err := index.Search(context.Background(), "alice", 10)
	req.NoError(err)
	req.Contains(ids, userID)

	// And login issues a token for the same user
	loginToken, err := service.Login("alice@example.com", testPassword)
	req.NoError(err)
	loginID, err := tokens.ValidateToken(string(loginToken))
	req.NoError(err)
	req.Equal(userID, loginID)
}

func TestAuthService_Register_Guards(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	users := repositories.NewUserRepository(badgerDB)
	service := NewAuthService(log, users, newTestTokenManager(), nil)

	// Weak passwords are refused before anything is stored
	_, err = service.Register("alice@example.com", "alice", "weakpassword")
	req.ErrorIs(err, errors.ErrInvalidPassword)

	// Duplicate emails are refused
	_, err = service.Register("alice@example.com", "alice", testPassword)
	req.NoError(err)
	_, err = service.Register("alice@example.com", "alice2", testPassword)
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	users := repositories.NewUserRepository(badgerDB)
	service := NewAuthService(log, users, newTestTokenManager(), nil)

	_, err = service.Register("alice@example.com", "alice", testPassword)
	req.NoError(err)

	// Unknown email and wrong password both map to the same generic error
	_, err = service.Login("ghost@example.com", testPassword)
	req.ErrorIs(err, errors.ErrInvalidCredentials)

	_, err = service.Login("alice@example.com", "Wrong-Password-123!")
	req.ErrorIs(err, errors.ErrInvalidCredentials)
}
