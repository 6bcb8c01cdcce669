package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Varun5711/taskmate/internal/models"
)

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: message})
}
