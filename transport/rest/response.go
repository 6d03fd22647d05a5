package rest

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

type cellRequest struct {
	Cell int `uri:"cell" binding:"min=0,max=8"`
}

type moveRequest struct {
	Move int `uri:"move" binding:"min=0"`
}

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides infrastructure details from clients.
func publicMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return http.StatusText(http.StatusInternalServerError)
	}
	return err.Error()
}
