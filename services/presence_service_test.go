package services

import (
	"testing"
	"time"

	"music-lab/domain/event"
	"music-lab/errors"
	"music-lab/mocks"
	"music-lab/moderation"
	"music-lab/repositories"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPresenceService_UpdateListeningStatus_GoingLiveNotifiesFriends(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := repositories.NewUserRepository(badgerDB)
	friends := repositories.NewFriendRepository(badgerDB)
	presence := repositories.NewPresenceRepository(badgerDB)
	dispatcher := mocks.NewMockIDispatcher(ctrl)
	service := NewPresenceService(log, presence, users, friends, dispatcher, nil)

	// Given a user with two friends
	userID, err := users.CreateUser("dj@example.com", "dj_echo", "hash")
	req.NoError(err)
	friendA, err := users.CreateUser("a@example.com", "friend_a", "hash")
	req.NoError(err)
	friendB, err := users.CreateUser("b@example.com", "friend_b", "hash")
	req.NoError(err)
	req.NoError(friends.AddFriendship(userID, friendA))
	req.NoError(friends.AddFriendship(userID, friendB))

	// Then both friends receive exactly one liveUsers push
	dispatcher.EXPECT().SendToMany(
		gomock.InAnyOrder([]uuid.UUID{friendA, friendB}),
		event.LiveUsers,
		event.LiveUsersPayload{
			UserID:   userID,
			Username: "dj_echo",
			Action:   event.ActionStarted,
			Genre:    "LIVE: techno set",
		}).Times(1)

	// When the user goes live
	req.NoError(service.UpdateListeningStatus(userID, "LIVE: techno set"))

	// And the status is persisted
	state, err := presence.Get(userID)
	req.NoError(err)
	req.Equal("LIVE: techno set", state.ListeningStatus)
	req.True(state.IsLive())
}

func TestPresenceService_UpdateListeningStatus_LiveToLivePushesNothing(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := repositories.NewUserRepository(badgerDB)
	friends := repositories.NewFriendRepository(badgerDB)
	presence := repositories.NewPresenceRepository(badgerDB)
	dispatcher := mocks.NewMockIDispatcher(ctrl)
	service := NewPresenceService(log, presence, users, friends, dispatcher, nil)

	userID, err := users.CreateUser("dj@example.com", "dj_echo", "hash")
	req.NoError(err)
	friendID, err := users.CreateUser("a@example.com", "friend_a", "hash")
	req.NoError(err)
	req.NoError(friends.AddFriendship(userID, friendID))

	// Given the user is already live
	dispatcher.EXPECT().SendToMany(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	req.NoError(service.UpdateListeningStatus(userID, "LIVE: techno set"))

	// When only the caption changes, still live
	// Then no further push happens (the single expectation above)
	req.NoError(service.UpdateListeningStatus(userID, "LIVE: downtempo closing"))
}

func TestPresenceService_UpdateListeningStatus_IdleToIdlePushesNothing(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := repositories.NewUserRepository(badgerDB)
	friends := repositories.NewFriendRepository(badgerDB)
	presence := repositories.NewPresenceRepository(badgerDB)
	dispatcher := mocks.NewMockIDispatcher(ctrl)
	service := NewPresenceService(log, presence, users, friends, dispatcher, nil)

	userID, err := users.CreateUser("dj@example.com", "dj_echo", "hash")
	req.NoError(err)
	friendID, err := users.CreateUser("a@example.com", "friend_a", "hash")
	req.NoError(err)
	req.NoError(friends.AddFriendship(userID, friendID))

	// When updating between two non-live captions
	// Then the dispatcher is never called
	req.NoError(service.UpdateListeningStatus(userID, "just browsing"))
	req.NoError(service.UpdateListeningStatus(userID, "listening to jazz"))
}

func TestPresenceService_UpdateListeningStatus_StoppingLiveClearsPlayback(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := repositories.NewUserRepository(badgerDB)
	friends := repositories.NewFriendRepository(badgerDB)
	presence := repositories.NewPresenceRepository(badgerDB)
	dispatcher := mocks.NewMockIDispatcher(ctrl)
	service := NewPresenceService(log, presence, users, friends, dispatcher, nil)

	userID, err := users.CreateUser("dj@example.com", "dj_echo", "hash")
	req.NoError(err)
	friendID, err := users.CreateUser("a@example.com", "friend_a", "hash")
	req.NoError(err)
	req.NoError(friends.AddFriendship(userID, friendID))

	// Given a live user with playback state
	dispatcher.EXPECT().SendToMany(gomock.Any(), event.LiveUsers, gomock.Any()).Times(2)
	req.NoError(service.UpdateListeningStatus(userID, "LIVE: techno set"))
	songID := uuid.New()
	req.NoError(service.UpdatePlayback(userID, &songID, 42.5, false))

	// When the user stops being live
	req.NoError(service.UpdateListeningStatus(userID, "taking a break"))

	// Then the playback fields are cleared together with the live flag
	state, err := presence.Get(userID)
	req.NoError(err)
	req.False(state.IsLive())
	req.Nil(state.CurrentSongID)
	req.Zero(state.Position)
	req.Nil(state.UpdatedAt)
}

func TestPresenceService_UpdateListeningStatus_UnknownUser(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := repositories.NewUserRepository(badgerDB)
	friends := repositories.NewFriendRepository(badgerDB)
	presence := repositories.NewPresenceRepository(badgerDB)
	dispatcher := mocks.NewMockIDispatcher(ctrl)
	service := NewPresenceService(log, presence, users, friends, dispatcher, nil)

	// When updating the status of a user that was never registered
	err = service.UpdateListeningStatus(uuid.New(), "LIVE: ghost set")

	// Then the update is refused and nothing is pushed
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestPresenceService_UpdateListeningStatus_CensorsStatus(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	moderator, err := moderation.NewModerator([]string{"trash"}, '*')
	req.NoError(err)

	users := repositories.NewUserRepository(badgerDB)
	friends := repositories.NewFriendRepository(badgerDB)
	presence := repositories.NewPresenceRepository(badgerDB)
	dispatcher := mocks.NewMockIDispatcher(ctrl)
	service := NewPresenceService(log, presence, users, friends, dispatcher, moderator)

	userID, err := users.CreateUser("dj@example.com", "dj_echo", "hash")
	req.NoError(err)

	// When the caption contains a censored word
	req.NoError(service.UpdateListeningStatus(userID, "listening to trash metal"))

	// Then the stored caption is censored
	state, err := presence.Get(userID)
	req.NoError(err)
	req.Equal("listening to ***** metal", state.ListeningStatus)
}

func TestPresenceService_Playback_RoundTrip(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := repositories.NewUserRepository(badgerDB)
	friends := repositories.NewFriendRepository(badgerDB)
	presence := repositories.NewPresenceRepository(badgerDB)
	dispatcher := mocks.NewMockIDispatcher(ctrl)
	service := NewPresenceService(log, presence, users, friends, dispatcher, nil)

	userID, err := users.CreateUser("dj@example.com", "dj_echo", "hash")
	req.NoError(err)

	// Given a live user
	dispatcher.EXPECT().SendToMany(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	req.NoError(service.UpdateListeningStatus(userID, "LIVE: techno set"))

	// When the playback position is reported
	songID := uuid.New()
	before := time.Now().UTC()
	req.NoError(service.UpdatePlayback(userID, &songID, 128.4, true))

	// Then followers can read it back
	playback, err := service.GetLivePlayback(userID)
	req.NoError(err)
	req.Equal(userID, playback.UserID)
	req.Equal("dj_echo", playback.Username)
	req.True(playback.IsLive)
	req.NotNil(playback.SongID)
	req.Equal(songID, *playback.SongID)
	req.InDelta(128.4, playback.Position, 0.001)
	req.True(playback.IsPaused)
	req.NotNil(playback.UpdatedAt)
	req.False(playback.UpdatedAt.Before(before))
}

func TestPresenceService_SetOnlineStatus(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := repositories.NewUserRepository(badgerDB)
	friends := repositories.NewFriendRepository(badgerDB)
	presence := repositories.NewPresenceRepository(badgerDB)
	dispatcher := mocks.NewMockIDispatcher(ctrl)
	service := NewPresenceService(log, presence, users, friends, dispatcher, nil)

	userID := uuid.New()

	// When marking the user online then offline
	req.NoError(service.SetOnlineStatus(userID, true))
	state, err := presence.Get(userID)
	req.NoError(err)
	req.True(state.IsOnline)
	req.False(state.LastSeen.IsZero())

	req.NoError(service.SetOnlineStatus(userID, false))
	state, err = presence.Get(userID)
	req.NoError(err)
	req.False(state.IsOnline)
}
