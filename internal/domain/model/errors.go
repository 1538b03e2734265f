package model

import "errors"

var (
	ErrUnknownTopic    = errors.New("unknown topic")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrInvalidURL      = errors.New("invalid article url")
)
