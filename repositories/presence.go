//go:generate go run go.uber.org/mock/mockgen -source=presence.go -destination=../mocks/mock_presence_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"

	"music-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IPresenceRepository interface {
	Get(userID uuid.UUID) (domain.PresenceState, error)
	Save(state domain.PresenceState) error
}

// PresenceRepository stores one presence row per user. Presence survives
// connection churn: rows are written on every status or playback update,
// whether or not the user currently holds a push connection.
type PresenceRepository struct {
	db *badger.DB
}

func NewPresenceRepository(db *badger.DB) IPresenceRepository {
	return &PresenceRepository{db: db}
}

func presenceKey(userID uuid.UUID) []byte {
	return []byte("presence:" + userID.String())
}

// Get returns the stored presence row, or a zero row carrying the user id
// when none was written yet.
func (p PresenceRepository) Get(userID uuid.UUID) (domain.PresenceState, error) {
	state := domain.PresenceState{UserID: userID}
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(presenceKey(userID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &state)
		})
	})
	if err != nil {
		return domain.PresenceState{UserID: userID}, fmt.Errorf("presence read failed: %w", err)
	}
	return state, nil
}

func (p PresenceRepository) Save(state domain.PresenceState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(presenceKey(state.UserID), data)
	})
}
