package service

import "errors"

// Error kinds. Handlers translate these into HTTP status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence failure")
)

// Caller facing messages.
const (
	MsgEmptyMessage       = "Image and message text cannot be empty."
	MsgNotAuthenticated   = "User is not authenticated."
	MsgReceiverNotFound   = "Receiver not found."
	MsgMessageNotFound    = "Message not found or access denied"
	MsgMessageNotAppeared = "Message must be appeared"
	MsgSendFailed         = "Error sending message."
	MsgDeleteFailed       = "Error deleting message."
	MsgAddReplyFailed     = "Error sending replay."
	MsgDeleteReplyFailed  = "Error Deleting replay."
	MsgInvalidUser        = "Invalid user."
	MsgInvalidMessage     = "Invalid message."
	MsgInvalidReaction    = "Invalid reaction."
	MsgEmailExists        = "User already exists with this email"
	MsgUserNameTaken      = "Username is already taken"
	MsgLinkTaken          = "This link is already taken. Please choose another one."
	MsgUserNotExist       = "User is Not Exist"
	MsgInvalidCredentials = "Unauthorized access. Invalid credentials."
	MsgInvalidRefresh     = "Invalid refresh token."
	MsgInvalidLink        = "invalid link"
	MsgLinkUserNotFound   = "user NotFound"
	MsgUserNotFound       = "User not found."
	MsgEmailChangeFailed  = "invalid changing email"
	MsgPasswordChange     = "invalid changing password!"
	MsgLinkChangeFailed   = "Invalid changing link."
	MsgImageRequired      = "Image is required."
	MsgEmptyReply         = "Reply text cannot be empty."
	MsgMessageTooLong     = "Message text cannot exceed 500 characters."
	MsgReplyTooLong       = "Reply text cannot exceed 500 characters."
	MsgInvalidImage       = "Image must be a jpeg, png, gif or webp file."
)

// Error is a business failure with a message safe to show to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Message extracts the caller facing message of a service error.
func Message(err error) (string, bool) {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Message, true
	}
	return "", false
}
