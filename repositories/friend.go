//go:generate go run go.uber.org/mock/mockgen -source=friend.go -destination=../mocks/mock_friend_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"music-lab/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type FriendRequest struct {
	ID         uuid.UUID     `json:"id"`
	SenderID   uuid.UUID     `json:"senderId"`
	ReceiverID uuid.UUID     `json:"receiverId"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type IFriendRepository interface {
	AreFriends(a, b uuid.UUID) (bool, error)
	AddFriendship(a, b uuid.UUID) error
	RemoveFriendship(a, b uuid.UUID) error
	FriendIDs(userID uuid.UUID) ([]uuid.UUID, error)

	CreateRequest(sender, receiver uuid.UUID) (FriendRequest, error)
	GetRequest(sender, receiver uuid.UUID) (FriendRequest, error)
	GetRequestByID(id uuid.UUID) (FriendRequest, error)
	PendingRequestsFor(receiver uuid.UUID) ([]FriendRequest, error)
	UpdateRequest(req FriendRequest) error
	DeleteRequestsBetween(a, b uuid.UUID) error
}

// FriendRepository stores the social graph. Each friendship is written as
// two directional keys so FriendIDs is a single prefix scan; friend requests
// are keyed by the (sender, receiver) pair with a secondary id index for
// accept/reject lookups.
type FriendRepository struct {
	db *badger.DB
}

func NewFriendRepository(db *badger.DB) IFriendRepository {
	return &FriendRepository{db: db}
}

func friendKey(owner, other uuid.UUID) []byte {
	return []byte(fmt.Sprintf("friend:%s:%s", owner, other))
}

func friendPrefix(owner uuid.UUID) []byte {
	return []byte(fmt.Sprintf("friend:%s:", owner))
}

func requestKey(sender, receiver uuid.UUID) []byte {
	return []byte(fmt.Sprintf("freq:%s:%s", sender, receiver))
}

func requestIDKey(id uuid.UUID) []byte {
	return []byte("freqid:" + id.String())
}

func (f FriendRepository) AreFriends(a, b uuid.UUID) (bool, error) {
	found := false
	err := f.db.View(func(txn *badger.Txn) error {
		if _, err := txn.Get(friendKey(a, b)); err == nil {
			found = true
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
	return found, err
}

func (f FriendRepository) AddFriendship(a, b uuid.UUID) error {
	return f.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(friendKey(a, b), []byte{1}); err != nil {
			return err
		}
		return txn.Set(friendKey(b, a), []byte{1})
	})
}

func (f FriendRepository) RemoveFriendship(a, b uuid.UUID) error {
	return f.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(friendKey(a, b)); err == badger.ErrKeyNotFound {
			return errors.ErrFriendshipNotFound
		} else if err != nil {
			return err
		}
		if err := txn.Delete(friendKey(a, b)); err != nil {
			return err
		}
		return txn.Delete(friendKey(b, a))
	})
}

// FriendIDs scans the user's directional friendship keys and returns the
// other end of each.
func (f FriendRepository) FriendIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	prefix := friendPrefix(userID)
	err := f.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			id, err := uuid.Parse(key[len(prefix):])
			if err != nil {
				return fmt.Errorf("corrupt friendship key %q: %w", key, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	return ids, err
}

func (f FriendRepository) CreateRequest(sender, receiver uuid.UUID) (FriendRequest, error) {
	req := FriendRequest{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Status:     RequestPending,
		CreatedAt:  time.Now().UTC(),
	}
	data, err := json.Marshal(req)
	if err != nil {
		return FriendRequest{}, fmt.Errorf("marshal failed: %w", err)
	}
	err = f.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(requestKey(sender, receiver), data); err != nil {
			return err
		}
		return txn.Set(requestIDKey(req.ID), requestKey(sender, receiver))
	})
	if err != nil {
		return FriendRequest{}, err
	}
	return req, nil
}

func (f FriendRepository) GetRequest(sender, receiver uuid.UUID) (FriendRequest, error) {
	var req FriendRequest
	err := f.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(requestKey(sender, receiver))
		if err == badger.ErrKeyNotFound {
			return errors.ErrRequestNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &req)
		})
	})
	return req, err
}

func (f FriendRepository) GetRequestByID(id uuid.UUID) (FriendRequest, error) {
	var req FriendRequest
	err := f.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(requestIDKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.ErrRequestNotFound
		}
		if err != nil {
			return err
		}
		var pairKey []byte
		if err := item.Value(func(val []byte) error {
			pairKey = append([]byte(nil), val...)
			return nil
		}); err != nil {
			return err
		}
		item, err = txn.Get(pairKey)
		if err != nil {
			return errors.ErrRequestNotFound
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &req)
		})
	})
	return req, err
}

// PendingRequestsFor scans the request rows and keeps the pending ones
// addressed to the receiver. The row count stays small enough that a full
// prefix scan beats maintaining a receiver-side index.
func (f FriendRepository) PendingRequestsFor(receiver uuid.UUID) ([]FriendRequest, error) {
	var requests []FriendRequest
	prefix := []byte("freq:")
	err := f.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var req FriendRequest
				if err := json.Unmarshal(val, &req); err != nil {
					return err
				}
				if req.ReceiverID == receiver && req.Status == RequestPending {
					requests = append(requests, req)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return requests, err
}

func (f FriendRepository) UpdateRequest(req FriendRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return f.db.Update(func(txn *badger.Txn) error {
		return txn.Set(requestKey(req.SenderID, req.ReceiverID), data)
	})
}

// DeleteRequestsBetween removes request rows in both directions, including
// their id index entries, so the two users can re-request each other later.
func (f FriendRepository) DeleteRequestsBetween(a, b uuid.UUID) error {
	return f.db.Update(func(txn *badger.Txn) error {
		for _, pair := range [][2]uuid.UUID{{a, b}, {b, a}} {
			key := requestKey(pair[0], pair[1])
			item, err := txn.Get(key)
			if err == badger.ErrKeyNotFound {
				continue
			}
			if err != nil {
				return err
			}
			var req FriendRequest
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &req)
			}); err != nil {
				return err
			}
			if err := txn.Delete(requestIDKey(req.ID)); err != nil {
				return err
			}
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
