package services

import (
	"context"
	"testing"

	"music-lab/repositories"
	"music-lab/search"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestUserService_Search_ExcludesCaller(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	index, err := search.NewUserIndex(t.TempDir(), log)
	req.NoError(err)
	defer func() { req.NoError(index.Close()) }()

	users := repositories.NewUserRepository(badgerDB)
	service := NewUserService(log, users, index)

	// Given two users with similar usernames
	aliceID, err := users.CreateUser("alice@example.com", "alice", "hash")
	req.NoError(err)
	req.NoError(index.IndexUser(aliceID, "alice", "alice@example.com"))
	aliceBisID, err := users.CreateUser("alice2@example.com", "alice", "hash")
	req.NoError(err)
	req.NoError(index.IndexUser(aliceBisID, "alice", "alice2@example.com"))

	// When alice searches for her own username
	results, err := service.Search(context.Background(), "alice", aliceID, 10)
	req.NoError(err)

	// Then she only sees the other alice
	ids := lo.Map(results, func(u repositories.User, _ int) uuid.UUID { return u.ID })
	req.Equal([]uuid.UUID{aliceBisID}, ids)
}

func TestUserService_Search_SkipsIndexEntriesWithoutRow(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	index, err := search.NewUserIndex(t.TempDir(), log)
	req.NoError(err)
	defer func() { req.NoError(index.Close()) }()

	users := repositories.NewUserRepository(badgerDB)
	service := NewUserService(log, users, index)

	// Given an index entry whose user row was deleted out of band
	req.NoError(index.IndexUser(uuid.New(), "orphan", "orphan@example.com"))

	// When searching
	results, err := service.Search(context.Background(), "orphan", uuid.New(), 10)

	// Then the orphan is silently skipped
	req.NoError(err)
	req.Empty(results)
}
