package errors

import "fmt"

var (
	ErrInvalidToken       = fmt.Errorf("invalid or expired token")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrUserNotFound       = fmt.Errorf("user not found")

	ErrSelfFriendRequest  = fmt.Errorf("cannot send a friend request to yourself")
	ErrAlreadyFriends     = fmt.Errorf("users are already friends")
	ErrRequestAlreadySent = fmt.Errorf("friend request already sent")
	ErrRequestNotFound    = fmt.Errorf("friend request not found")
	ErrNotRequestReceiver = fmt.Errorf("only the receiver can process this request")
	ErrRequestProcessed   = fmt.Errorf("friend request has already been processed")
	ErrFriendshipNotFound = fmt.Errorf("friendship not found")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
