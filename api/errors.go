package api

import (
	"errors"
	"net/http"

	"github.com/wricardo/path-of-faith/game/config"
	"github.com/wricardo/path-of-faith/game/engine"
	"github.com/wricardo/path-of-faith/game/service"
)

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
	{service.ErrConfigNotFound, http.StatusNotFound, "config_not_found"},
	{service.ErrSessionAlreadyExists, http.StatusConflict, "session_exists"},
	{engine.ErrQuestionPending, http.StatusConflict, "question_pending"},
	{engine.ErrAwaitingAcknowledgement, http.StatusConflict, "awaiting_acknowledgement"},
	{engine.ErrNoPendingQuestion, http.StatusConflict, "no_pending_question"},
	{engine.ErrWrongQuestionStyle, http.StatusConflict, "wrong_question_style"},
	{engine.ErrNothingToAcknowledge, http.StatusConflict, "nothing_to_acknowledge"},
	{engine.ErrInvalidOption, http.StatusBadRequest, "invalid_option"},
	{service.ErrInvalidConfig, http.StatusBadRequest, "invalid_config"},
	{config.ErrNoContentDir, http.StatusServiceUnavailable, "no_content_dir"},
}

// classify returns the HTTP status and error code for a service error.
func classify(err error) (int, string) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, "internal"
}
