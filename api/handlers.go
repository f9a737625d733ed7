// Package api exposes the REST surface: auth, presence updates, friend
// lifecycle and user search. The SSE stream endpoint lives in the sse
// package; everything here is conventional request/response.
package api

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"music-lab/auth"
	"music-lab/contract"
	"music-lab/errors"
	"music-lab/services"
	"music-lab/sse"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type Server struct {
	log      *slog.Logger
	auth     services.IAuthService
	presence services.IPresenceService
	friends  services.IFriendService
	users    services.IUserService
	stream   *sse.Handler
	tokens   contract.ITokenValidator
}

func NewServer(
	log *slog.Logger,
	authService services.IAuthService,
	presence services.IPresenceService,
	friends services.IFriendService,
	users services.IUserService,
	stream *sse.Handler,
	tokens contract.ITokenValidator,
) *Server {
	return &Server{
		log:      log,
		auth:     authService,
		presence: presence,
		friends:  friends,
		users:    users,
		stream:   stream,
		tokens:   tokens,
	}
}

// Routes wires all endpoints into a mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)

	// Token travels as a query parameter here; see sse.Handler.
	mux.HandleFunc("GET /api/sse/events", s.stream.Events)

	authed := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(s.tokens, h)
	}
	mux.Handle("PUT /api/users/status", authed(s.updateStatus))
	mux.Handle("PUT /api/users/playback", authed(s.updatePlayback))
	mux.Handle("GET /api/users/{id}/playback", authed(s.livePlayback))
	mux.Handle("GET /api/users/search", authed(s.searchUsers))
	mux.Handle("GET /api/friends", authed(s.listFriends))
	mux.Handle("GET /api/friends/requests", authed(s.listFriendRequests))
	mux.Handle("POST /api/friends/requests", authed(s.sendFriendRequest))
	mux.Handle("POST /api/friends/requests/{id}/accept", authed(s.acceptFriendRequest))
	mux.Handle("POST /api/friends/requests/{id}/reject", authed(s.rejectFriendRequest))
	mux.Handle("DELETE /api/friends/{id}", authed(s.removeFriend))

	return mux
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.auth.Register(req.Email, req.Username, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tokenResponse{Token: string(token)})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tokenResponse{Token: string(token)})
}

type statusRequest struct {
	Status string `json:"status" validate:"max=256"`
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req statusRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.presence.UpdateListeningStatus(userID, req.Status); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type playbackRequest struct {
	SongID   *uuid.UUID `json:"songId"`
	Position float64    `json:"position" validate:"gte=0"`
	IsPaused bool       `json:"isPaused"`
}

func (s *Server) updatePlayback(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req playbackRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.presence.UpdatePlayback(userID, req.SongID, req.Position, req.IsPaused); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) livePlayback(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	playback, err := s.presence.GetLivePlayback(targetID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, playback)
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func (s *Server) searchUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}

	matches, err := s.users.Search(r.Context(), query, userID, 20)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res := make([]userResponse, 0, len(matches))
	for _, u := range matches {
		res = append(res, userResponse{ID: u.ID, Username: u.Username})
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) listFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	friends, err := s.friends.Friends(userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res := make([]userResponse, 0, len(friends))
	for _, u := range friends {
		res = append(res, userResponse{ID: u.ID, Username: u.Username})
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) listFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	pending, err := s.friends.PendingRequests(userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pending)
}

type friendRequestRequest struct {
	ReceiverID uuid.UUID `json:"receiverId"`
}

func (s *Server) sendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req friendRequestRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.friends.SendRequest(userID, req.ReceiverID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) acceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	s.processRequest(w, r, s.friends.AcceptRequest)
}

func (s *Server) rejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	s.processRequest(w, r, s.friends.RejectRequest)
}

func (s *Server) processRequest(w http.ResponseWriter, r *http.Request,
	op func(requestID, userID uuid.UUID) error) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	if err := op(requestID, userID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	friendID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := s.friends.RemoveFriend(userID, friendID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("Failed to encode response", "error", err)
	}
}

// writeError maps sentinel errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case stderrors.Is(err, errors.ErrUserNotFound),
		stderrors.Is(err, errors.ErrRequestNotFound),
		stderrors.Is(err, errors.ErrFriendshipNotFound):
		status = http.StatusNotFound
	case stderrors.Is(err, errors.ErrSelfFriendRequest),
		stderrors.Is(err, errors.ErrAlreadyFriends),
		stderrors.Is(err, errors.ErrRequestAlreadySent),
		stderrors.Is(err, errors.ErrRequestProcessed),
		stderrors.Is(err, errors.ErrInvalidPassword),
		stderrors.Is(err, errors.ErrUserAlreadyExists):
		status = http.StatusBadRequest
	case stderrors.Is(err, errors.ErrNotRequestReceiver):
		status = http.StatusForbidden
	case stderrors.Is(err, errors.ErrInvalidCredentials),
		stderrors.Is(err, errors.ErrInvalidToken):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
