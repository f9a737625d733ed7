//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/google/uuid"
)

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IDispatcher pushes events to connected clients. Delivery is best-effort:
// implementations never surface a failure to the caller.
type IDispatcher interface {
	SendTo(userID uuid.UUID, eventType string, payload any)
	SendToMany(userIDs []uuid.UUID, eventType string, payload any)
	Broadcast(eventType string, payload any)
}

// ITokenValidator resolves a bearer token to the user it was issued for.
type ITokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

// IFriendGraph resolves the current friend set of a user.
type IFriendGraph interface {
	FriendIDs(userID uuid.UUID) ([]uuid.UUID, error)
}
