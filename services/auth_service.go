package services

import (
	"fmt"
	"log/slog"

	"music-lab/auth"
	"music-lab/errors"
	"music-lab/repositories"
	"music-lab/search"
)

type IAuthService interface {
	Login(email, password string) (Token, error)
	Register(email, username, password string) (Token, error)
}

type Token string

type AuthService struct {
	log            *slog.Logger
	userRepository repositories.IUserRepository
	tokens         *auth.TokenManager
	index          *search.UserIndex
}

func NewAuthService(log *slog.Logger, repo repositories.IUserRepository,
	tokens *auth.TokenManager, index *search.UserIndex) IAuthService {
	return &AuthService{
		log:            log,
		userRepository: repo,
		tokens:         tokens,
		index:          index,
	}
}

func (s *AuthService) Register(email, username, password string) (Token, error) {
	valReq := auth.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	}

	// Validate business rules before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// Hash in the service layer to keep the repository unaware of plain passwords.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	userID, err := s.userRepository.CreateUser(email, username, hashedPassword)
	if err != nil {
		return "", err // Propagates ErrUserAlreadyExists when the email is taken
	}

	// Index failures must not block registration; search just lags behind.
	if s.index != nil {
		if err := s.index.IndexUser(userID, username, email); err != nil {
			s.log.Warn("Failed to index new user", "user", userID, "error", err)
		}
	}

	token, err := s.tokens.GenerateToken(userID)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}

func (s *AuthService) Login(email, password string) (Token, error) {
	user, err := s.userRepository.GetByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration attacks
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}
