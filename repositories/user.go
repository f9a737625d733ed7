//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"music-lab/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(email, username, hashedPassword string) (uuid.UUID, error)
	GetByEmail(email string) (User, error)
	GetByID(id uuid.UUID) (User, error)
}

// User is the domain-friendly representation of a user in the repository layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

func userKey(id uuid.UUID) []byte  { return []byte("user:id:" + id.String()) }
func emailKey(email string) []byte { return []byte("user:email:" + email) }

// CreateUser persists the user under both its id key and an email index.
// The email index doubles as the uniqueness check.
func (u UserRepository) CreateUser(email, username, hashedPassword string) (uuid.UUID, error) {
	user := User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(user)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal failed: %w", err)
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(emailKey(email), []byte(user.ID.String())); err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), data)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

func (u UserRepository) GetByEmail(email string) (User, error) {
	var id uuid.UUID
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err != nil {
			return errors.ErrUserNotFound
		}
		return item.Value(func(val []byte) error {
			id, err = uuid.Parse(string(val))
			return err
		})
	})
	if err != nil {
		return User{}, err
	}
	return u.GetByID(id)
}

func (u UserRepository) GetByID(id uuid.UUID) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			return errors.ErrUserNotFound
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	return user, err
}
