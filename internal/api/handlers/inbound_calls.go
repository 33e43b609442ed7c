package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"phonenix/internal/agentconfig"
	"phonenix/internal/ai"
	"phonenix/internal/config"
	"phonenix/internal/store"
	"phonenix/internal/voice"
)

// HandleInboundCall answers Twilio's incoming-call webhook. The webhook URL
// may carry ?config_id= for a stored config; otherwise the caller gets the
// default configuration with their number filled in, kept until the number's
// status callback (/call-status) reports the call finished.
func HandleInboundCall(cfg *config.Config, s store.Store, convs *Conversations) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		callSid := r.FormValue("CallSid")
		callerPhone := r.FormValue("From")
		zap.L().Info("Incoming call received", zap.String("call_sid", callSid), zap.String("from", callerPhone))

		if cfg.RuntimeStreamURL == "" {
			zap.L().Error("RUNTIME_STREAM_URL is not configured")
			rejectCall(w, "Sorry, we cannot take your call right now.")
			return
		}

		configID := r.URL.Query().Get("config_id")
		owned := configID == ""
		if owned {
			agentCfg := agentconfig.FromLegacyMetadata(map[string]any{
				"call_purpose": "inbound inquiry",
				"user_details": map[string]any{"phone": callerPhone},
			})
			agentCfg.CustomInstructions = "Opening: " + ai.InboundGreetingInstruction(agentCfg)

			var err error
			configID, err = s.Save(r.Context(), agentCfg)
			if err != nil {
				zap.L().Error("Failed to save agent config", zap.Error(err))
				rejectCall(w, "Sorry, we cannot take your call right now.")
				return
			}
		}

		doc, err := voice.StreamTwiML(cfg.RuntimeStreamURL, map[string]string{
			"config_id":    configID,
			"caller_phone": callerPhone,
			"direction":    "inbound",
		})
		if err != nil {
			if owned {
				releaseConfig(r.Context(), s, configID)
			}
			writeTwiML(w, "", err)
			return
		}

		if callSid != "" {
			convs.Store(&Conversation{
				CallSid:    callSid,
				ConfigID:   configID,
				Number:     callerPhone,
				OwnsConfig: owned,
			})
		}
		writeTwiML(w, doc, nil)
	})
}
