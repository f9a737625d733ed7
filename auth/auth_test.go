package auth

import (
	"testing"
	"time"

	"music-lab/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager(testSecret, "music-lab", "music-lab-clients", time.Hour)
	userID := uuid.New()

	// When generating a token and validating it
	token, err := manager.GenerateToken(userID)
	req.NoError(err)
	req.NotEmpty(token)

	parsedID, err := manager.ValidateToken(token)

	// Then the original user id comes back
	req.NoError(err)
	req.Equal(userID, parsedID)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	req := require.New(t)
	// Given a manager issuing already-expired tokens
	manager := NewTokenManager(testSecret, "music-lab", "music-lab-clients", -time.Minute)

	token, err := manager.GenerateToken(uuid.New())
	req.NoError(err)

	// Then validation refuses it
	_, err = manager.ValidateToken(token)
	req.ErrorIs(err, errors.ErrInvalidToken)
}

func TestTokenManager_RejectsWrongIssuerOrAudience(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager(testSecret, "music-lab", "music-lab-clients", time.Hour)

	// Given tokens minted by other services sharing the secret
	otherIssuer := NewTokenManager(testSecret, "other-service", "music-lab-clients", time.Hour)
	otherAudience := NewTokenManager(testSecret, "music-lab", "other-clients", time.Hour)

	foreignToken, err := otherIssuer.GenerateToken(uuid.New())
	req.NoError(err)
	misroutedToken, err := otherAudience.GenerateToken(uuid.New())
	req.NoError(err)

	// Then both are refused
	_, err = manager.ValidateToken(foreignToken)
	req.ErrorIs(err, errors.ErrInvalidToken)
	_, err = manager.ValidateToken(misroutedToken)
	req.ErrorIs(err, errors.ErrInvalidToken)
}

func TestTokenManager_RejectsTamperedToken(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager(testSecret, "music-lab", "music-lab-clients", time.Hour)

	token, err := manager.GenerateToken(uuid.New())
	req.NoError(err)

	// When the signature is damaged
	_, err = manager.ValidateToken(token[:len(token)-2] + "xx")
	req.ErrorIs(err, errors.ErrInvalidToken)

	// And an empty token is refused outright
	_, err = manager.ValidateToken("")
	req.ErrorIs(err, errors.ErrInvalidToken)
}

func TestTokenManager_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager(testSecret, "music-lab", "music-lab-clients", time.Hour)
	impostor := NewTokenManager("another-secret-entirely", "music-lab", "music-lab-clients", time.Hour)

	token, err := impostor.GenerateToken(uuid.New())
	req.NoError(err)

	_, err = manager.ValidateToken(token)
	req.ErrorIs(err, errors.ErrInvalidToken)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	req := require.New(t)
	password := "Str0ng&Secret-Password!"

	// When hashing
	hash, err := HashPassword(password)
	req.NoError(err)
	req.Contains(hash, "$argon2id$")

	// Then the right password matches and a wrong one does not
	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("Wrong-Password-123!", hash)
	req.NoError(err)
	req.False(match)
}

func TestHashPassword_SaltsAreUnique(t *testing.T) {
	req := require.New(t)

	// Two hashes of the same password must differ
	first, err := HashPassword("Str0ng&Secret-Password!")
	req.NoError(err)
	second, err := HashPassword("Str0ng&Secret-Password!")
	req.NoError(err)
	req.NotEqual(first, second)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	req := require.New(t)
	_, err := ComparePassword("whatever", "not-a-hash")
	req.Error(err)
}

func TestValidateRegister(t *testing.T) {
	req := require.New(t)

	valid := RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "Str0ng&Secret-Password!",
	}
	req.NoError(ValidateRegister(valid))

	// Malformed email
	bad := valid
	bad.Email = "not-an-email"
	req.Error(ValidateRegister(bad))

	// Username too short
	bad = valid
	bad.Username = "ab"
	req.Error(ValidateRegister(bad))

	// Long enough but missing character classes
	bad = valid
	bad.Password = "alllowercasepassword"
	req.ErrorIs(ValidateRegister(bad), errors.ErrInvalidPassword)

	// Too short even with every character class
	bad = valid
	bad.Password = "Aa1!"
	req.Error(ValidateRegister(bad))
}
