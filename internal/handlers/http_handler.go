package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Varun5711/taskmate/internal/apperror"
	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/Varun5711/taskmate/internal/models"
)

const (
	MsgInvalidBody = "Invalid request body"
	maxBodyBytes   = 1 << 20
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.MessageResponse{Message: message})
}

// respondError writes err as {"message": ...} with the status its kind maps
// to. Internal failures are logged; their message is still returned.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	status := apperror.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed: %v", err)
	}
	respondMessage(w, status, apperror.Message(err))
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperror.Validation(MsgInvalidBody)
	}
	return nil
}

func withTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(r.Context(), d)
}
