package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"phonenix/internal/agentconfig"
	"phonenix/internal/voice"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("Failed to write response", zap.Error(err))
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, message string, err error) {
	text := message
	if err != nil {
		text = fmt.Sprintf("%s: %v", message, err)
	}
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{
		Error: text,
	})
}

func writeTwiML(w http.ResponseWriter, twiml string, err error) {
	if err != nil {
		zap.L().Error("Failed to build TwiML", zap.Error(err))
		http.Error(w, "failed to build TwiML", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	w.Write([]byte(twiml))
}

// rejectCall tells a caller the call cannot be served and hangs up.
func rejectCall(w http.ResponseWriter, message string) {
	doc, err := voice.RejectTwiML(message)
	writeTwiML(w, doc, err)
}

// readMetadata decodes a JSON or YAML request body into job metadata. An
// empty body is an empty mapping; bodies over maxBodyBytes are rejected.
func readMetadata(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return agentconfig.DecodeJobMetadata(body)
}

// writeBodyError reports a request body readMetadata could not use.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeErrorResponse(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
		return
	}
	writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err)
}

func statusFor(err error) int {
	if errors.Is(err, agentconfig.ErrConfiguration) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
