package chat

import "errors"

var (
	ErrSessionNotFound         = errors.New("session not found")
	ErrEmptyMessage            = errors.New("message is empty")
	ErrCollaboratorUnavailable = errors.New("downstream collaborator unavailable")
)
