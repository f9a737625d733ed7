package repositories

import (
	"testing"
	"time"

	"music-lab/domain"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestPresenceRepository_SaveAndGet(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewPresenceRepository(badgerDB)
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	// When saving a full presence row
	state := domain.PresenceState{
		UserID:          userID,
		IsOnline:        true,
		LastSeen:        now,
		ListeningStatus: "LIVE: techno set",
		CurrentSongID:   lo.ToPtr(uuid.New()),
		Position:        42.5,
		UpdatedAt:       &now,
		IsPaused:        true,
	}
	req.NoError(repo.Save(state))

	// Then the row round-trips
	loaded, err := repo.Get(userID)
	req.NoError(err)
	req.Equal(state.UserID, loaded.UserID)
	req.True(loaded.IsOnline)
	req.Equal("LIVE: techno set", loaded.ListeningStatus)
	req.Equal(*state.CurrentSongID, *loaded.CurrentSongID)
	req.InDelta(42.5, loaded.Position, 0.001)
	req.True(loaded.IsPaused)
	req.True(loaded.IsLive())
}

func TestPresenceRepository_Get_UnknownUserReturnsZeroRow(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewPresenceRepository(badgerDB)
	userID := uuid.New()

	// A user that never reported presence gets an empty row, not an error
	state, err := repo.Get(userID)
	req.NoError(err)
	req.Equal(userID, state.UserID)
	req.False(state.IsOnline)
	req.False(state.IsLive())
	req.Nil(state.CurrentSongID)
}

func TestPresenceRepository_Save_Overwrites(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewPresenceRepository(badgerDB)
	userID := uuid.New()

	req.NoError(repo.Save(domain.PresenceState{UserID: userID, ListeningStatus: "LIVE: set"}))
	req.NoError(repo.Save(domain.PresenceState{UserID: userID, ListeningStatus: "idle"}))

	state, err := repo.Get(userID)
	req.NoError(err)
	req.Equal("idle", state.ListeningStatus)
	req.False(state.IsLive())
}
