package services

import (
	"log/slog"
	"time"

	"music-lab/contract"
	"music-lab/domain/event"
	"music-lab/errors"
	"music-lab/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IFriendService interface {
	SendRequest(senderID, receiverID uuid.UUID) error
	AcceptRequest(requestID, userID uuid.UUID) error
	RejectRequest(requestID, userID uuid.UUID) error
	RemoveFriend(userID, friendID uuid.UUID) error
	Friends(userID uuid.UUID) ([]repositories.User, error)
	PendingRequests(userID uuid.UUID) ([]PendingRequest, error)
}

// PendingRequest is an incoming friend request hydrated with the sender's
// username, ready for the client's accept/reject UI.
type PendingRequest struct {
	ID             uuid.UUID `json:"id"`
	SenderID       uuid.UUID `json:"senderId"`
	SenderUsername string    `json:"senderUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FriendService owns the friend-request lifecycle. The dispatcher is its
// only channel to reach connected clients; a peer being offline or
// unreachable never fails the business operation.
type FriendService struct {
	log        *slog.Logger
	friends    repositories.IFriendRepository
	users      repositories.IUserRepository
	dispatcher contract.IDispatcher
}

func NewFriendService(
	log *slog.Logger,
	friends repositories.IFriendRepository,
	users repositories.IUserRepository,
	dispatcher contract.IDispatcher,
) IFriendService {
	return &FriendService{
		log:        log,
		friends:    friends,
		users:      users,
		dispatcher: dispatcher,
	}
}

// SendRequest creates a pending request and notifies the receiver. When the
// receiver already has a pending request towards the sender, the two
// requests resolve into a friendship instead (auto-accept).
func (s *FriendService) SendRequest(senderID, receiverID uuid.UUID) error {
	if senderID == receiverID {
		return errors.ErrSelfFriendRequest
	}

	if _, err := s.users.GetByID(receiverID); err != nil {
		return err
	}

	alreadyFriends, err := s.friends.AreFriends(senderID, receiverID)
	if err != nil {
		return err
	}
	if alreadyFriends {
		return errors.ErrAlreadyFriends
	}

	if _, err := s.friends.GetRequest(senderID, receiverID); err == nil {
		return errors.ErrRequestAlreadySent
	} else if err != errors.ErrRequestNotFound {
		return err
	}

	// A pending request in the other direction means both sides want the
	// friendship: accept it instead of creating a duplicate.
	reverse, err := s.friends.GetRequest(receiverID, senderID)
	if err == nil && reverse.Status == repositories.RequestPending {
		return s.acceptInternal(reverse)
	}
	if err != nil && err != errors.ErrRequestNotFound {
		return err
	}

	if _, err := s.friends.CreateRequest(senderID, receiverID); err != nil {
		return err
	}

	s.dispatcher.SendTo(receiverID, event.FriendRequest,
		event.ActionPayload{Action: event.ActionReceived})
	return nil
}

func (s *FriendService) AcceptRequest(requestID, userID uuid.UUID) error {
	req, err := s.friends.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != userID {
		return errors.ErrNotRequestReceiver
	}
	if req.Status != repositories.RequestPending {
		return errors.ErrRequestProcessed
	}
	return s.acceptInternal(req)
}

func (s *FriendService) RejectRequest(requestID, userID uuid.UUID) error {
	req, err := s.friends.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != userID {
		return errors.ErrNotRequestReceiver
	}
	if req.Status != repositories.RequestPending {
		return errors.ErrRequestProcessed
	}

	req.Status = repositories.RequestRejected
	if err := s.friends.UpdateRequest(req); err != nil {
		return err
	}

	s.dispatcher.SendTo(req.SenderID, event.FriendRequest,
		event.ActionPayload{Action: event.ActionRejected})
	return nil
}

// RemoveFriend deletes the friendship together with any request rows between
// the two users, so either side can re-request the other afterwards.
func (s *FriendService) RemoveFriend(userID, friendID uuid.UUID) error {
	if err := s.friends.RemoveFriendship(userID, friendID); err != nil {
		return err
	}
	if err := s.friends.DeleteRequestsBetween(userID, friendID); err != nil {
		return err
	}

	s.dispatcher.SendToMany([]uuid.UUID{userID, friendID}, event.Friends,
		event.ActionPayload{Action: event.ActionRemoved})
	return nil
}

func (s *FriendService) Friends(userID uuid.UUID) ([]repositories.User, error) {
	ids, err := s.friends.FriendIDs(userID)
	if err != nil {
		return nil, err
	}

	users := make([]repositories.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(id)
		if err != nil {
			s.log.Warn("Friend id without user row", "user", id, "error", err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// PendingRequests lists the requests awaiting the user's decision.
func (s *FriendService) PendingRequests(userID uuid.UUID) ([]PendingRequest, error) {
	rows, err := s.friends.PendingRequestsFor(userID)
	if err != nil {
		return nil, err
	}

	pending := make([]PendingRequest, 0, len(rows))
	for _, row := range rows {
		sender, err := s.users.GetByID(row.SenderID)
		if err != nil {
			s.log.Warn("Request from unknown sender", "sender", row.SenderID, "error", err)
			continue
		}
		pending = append(pending, PendingRequest{
			ID:             row.ID,
			SenderID:       row.SenderID,
			SenderUsername: sender.Username,
			CreatedAt:      row.CreatedAt,
		})
	}
	return pending, nil
}

func (s *FriendService) acceptInternal(req repositories.FriendRequest) error {
	req.Status = repositories.RequestAccepted
	if err := s.friends.UpdateRequest(req); err != nil {
		return err
	}
	if err := s.friends.AddFriendship(req.SenderID, req.ReceiverID); err != nil {
		return err
	}

	s.dispatcher.SendToMany(
		lo.Uniq([]uuid.UUID{req.SenderID, req.ReceiverID}),
		event.Friends,
		event.ActionPayload{Action: event.ActionAdded})
	return nil
}
