package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"phonenix/internal/agentconfig"
	"phonenix/internal/store"
	"phonenix/internal/voice"
)

// SignedURLProvider issues one-off conversation URLs on the voice runtime.
type SignedURLProvider interface {
	SignedURL(ctx context.Context) (string, error)
}

type SessionResponse struct {
	ConfigID   string           `json:"config_id,omitempty"`
	SignedURL  string           `json:"signed_url"`
	Initiation voice.Initiation `json:"conversation_initiation_client_data"`
}

// HandleCreateSession prepares the handoff to the voice runtime: a signed
// conversation URL plus the initiation message carrying the prompt. The body
// is either {"config_id": "..."} for a stored config or job metadata.
func HandleCreateSession(s store.Store, runtime SignedURLProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metadata, err := readMetadata(w, r)
		if err != nil {
			writeBodyError(w, err)
			return
		}

		configID := stringField(metadata, "config_id")

		var cfg *agentconfig.AgentConfig
		var dial agentconfig.DialInfo
		if configID != "" {
			var ok bool
			if cfg, ok = loadConfig(w, r, s, configID); !ok {
				return
			}
			dial.PhoneNumber = stringField(metadata, "phone_number")
		} else {
			job := agentconfig.ParseJobMetadata(metadata)
			cfg, dial = job.Config, job.Dial
		}

		signedURL, err := runtime.SignedURL(r.Context())
		if err != nil {
			zap.L().Error("Failed to get signed URL", zap.Error(err))
			writeErrorResponse(w, http.StatusBadGateway, "failed to reach voice runtime", err)
			return
		}

		writeJSON(w, http.StatusOK, SessionResponse{
			ConfigID:   configID,
			SignedURL:  signedURL,
			Initiation: voice.NewInitiation(cfg, dial.PhoneNumber),
		})
	})
}
