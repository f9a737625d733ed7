package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestUserIndex_IndexAndSearch(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	index, err := NewUserIndex(t.TempDir(), log)
	req.NoError(err)
	defer func() { req.NoError(index.Close()) }()

	// Given three indexed users
	aliceID, bobID, echoID := uuid.New(), uuid.New(), uuid.New()
	req.NoError(index.IndexUser(aliceID, "alice", "alice@example.com"))
	req.NoError(index.IndexUser(bobID, "bob", "bob@example.com"))
	req.NoError(index.IndexUser(echoID, "dj_echo", "echo@example.com"))

	// When searching by username
	ids, err := index.Search(context.Background(), "alice", 10)
	req.NoError(err)
	req.Equal([]uuid.UUID{aliceID}, ids)

	// Then a query matching nobody returns an empty result
	ids, err = index.Search(context.Background(), "nosuchuser", 10)
	req.NoError(err)
	req.Empty(ids)
}

func TestUserIndex_ReindexReplacesDocument(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	index, err := NewUserIndex(t.TempDir(), log)
	req.NoError(err)
	defer func() { req.NoError(index.Close()) }()

	// Given a user indexed under an old username
	userID := uuid.New()
	req.NoError(index.IndexUser(userID, "oldname", "user@example.com"))

	// When re-indexing with a new username
	req.NoError(index.IndexUser(userID, "newname", "user@example.com"))

	// Then only the new username matches
	ids, err := index.Search(context.Background(), "oldname", 10)
	req.NoError(err)
	req.Empty(ids)

	ids, err = index.Search(context.Background(), "newname", 10)
	req.NoError(err)
	req.Equal([]uuid.UUID{userID}, ids)
}
