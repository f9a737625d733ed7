package services

import (
	"log/slog"
	"time"

	"music-lab/contract"
	"music-lab/domain"
	"music-lab/domain/event"
	"music-lab/moderation"
	"music-lab/repositories"

	"github.com/google/uuid"
)

type IPresenceService interface {
	UpdateListeningStatus(userID uuid.UUID, status string) error
	UpdatePlayback(userID uuid.UUID, songID *uuid.UUID, position float64, paused bool) error
	GetLivePlayback(userID uuid.UUID) (domain.LivePlayback, error)
	SetOnlineStatus(userID uuid.UUID, online bool) error
}

// PresenceService coordinates presence writes with push notifications.
// Every status or playback update is persisted unconditionally; a push to
// friends happens only when a status update crosses the live boundary, so
// cosmetic caption changes never cause notification storms.
type PresenceService struct {
	log        *slog.Logger
	presence   repositories.IPresenceRepository
	users      repositories.IUserRepository
	friends    contract.IFriendGraph
	dispatcher contract.IDispatcher
	moderator  *moderation.Moderator
}

func NewPresenceService(
	log *slog.Logger,
	presence repositories.IPresenceRepository,
	users repositories.IUserRepository,
	friends contract.IFriendGraph,
	dispatcher contract.IDispatcher,
	moderator *moderation.Moderator,
) IPresenceService {
	return &PresenceService{
		log:        log,
		presence:   presence,
		users:      users,
		friends:    friends,
		dispatcher: dispatcher,
		moderator:  moderator,
	}
}

// UpdateListeningStatus persists the new caption and notifies the user's
// friends when the live flag flips. A status is live iff it contains the
// live marker substring; live→live and idle→idle rewrites push nothing.
func (s *PresenceService) UpdateListeningStatus(userID uuid.UUID, status string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}

	if s.moderator != nil {
		status = s.moderator.Censor(status)
	}

	state, err := s.presence.Get(userID)
	if err != nil {
		return err
	}

	wasLive := state.IsLive()
	isLive := domain.IsLiveStatus(status)

	state.ListeningStatus = status
	if !isLive {
		// Leaving (or staying out of) live clears the playback fields.
		state.CurrentSongID = nil
		state.Position = 0
		state.UpdatedAt = nil
	}
	if err := s.presence.Save(state); err != nil {
		return err
	}

	if wasLive == isLive {
		return nil
	}

	// Transition edge: tell the current friend set. Push problems never
	// fail the status update itself.
	friendIDs, err := s.friends.FriendIDs(userID)
	if err != nil {
		s.log.Warn("Could not resolve friends for live notification", "user", userID, "error", err)
		return nil
	}

	action := event.ActionStopped
	if isLive {
		action = event.ActionStarted
	}
	s.dispatcher.SendToMany(friendIDs, event.LiveUsers, event.LiveUsersPayload{
		UserID:   userID,
		Username: user.Username,
		Action:   action,
		Genre:    status,
	})
	return nil
}

// UpdatePlayback stores the live position fields. Followers observe playback
// through GetLivePlayback polling, so no push is emitted here.
func (s *PresenceService) UpdatePlayback(userID uuid.UUID, songID *uuid.UUID, position float64, paused bool) error {
	state, err := s.presence.Get(userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	state.CurrentSongID = songID
	state.Position = position
	state.UpdatedAt = &now
	state.IsPaused = paused
	return s.presence.Save(state)
}

func (s *PresenceService) GetLivePlayback(userID uuid.UUID) (domain.LivePlayback, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return domain.LivePlayback{}, err
	}
	state, err := s.presence.Get(userID)
	if err != nil {
		return domain.LivePlayback{}, err
	}

	return domain.LivePlayback{
		UserID:    userID,
		Username:  user.Username,
		IsLive:    state.IsLive(),
		SongID:    state.CurrentSongID,
		Position:  state.Position,
		UpdatedAt: state.UpdatedAt,
		IsPaused:  state.IsPaused,
	}, nil
}

func (s *PresenceService) SetOnlineStatus(userID uuid.UUID, online bool) error {
	state, err := s.presence.Get(userID)
	if err != nil {
		return err
	}
	state.IsOnline = online
	state.LastSeen = time.Now().UTC()
	return s.presence.Save(state)
}
