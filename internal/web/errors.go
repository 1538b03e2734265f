package web

import (
	"errors"
	"net/http"

	"newstracker/internal/domain/model"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrUnknownTopic):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidSettings), errors.Is(err, model.ErrInvalidURL):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error, status int) string {
	if status == http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
