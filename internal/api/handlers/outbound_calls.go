package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"phonenix/internal/agentconfig"
	"phonenix/internal/config"
	"phonenix/internal/store"
	"phonenix/internal/voice"
)

// Telephony is the provider side of a call: dialing and transferring.
type Telephony interface {
	PlaceCall(to, twimlURL, statusURL string) (string, error)
	Transfer(callSid, transferTo string) error
}

// Conversation is a live call the service set up.
type Conversation struct {
	CallSid    string
	ConfigID   string
	Number     string
	TransferTo string
	// OwnsConfig marks configs saved for this call alone; they are deleted
	// when the call ends.
	OwnsConfig bool
}

// Conversations tracks live calls by call SID until Twilio reports them
// finished on /call-status.
type Conversations struct {
	calls sync.Map
}

func (c *Conversations) Store(conv *Conversation) {
	c.calls.Store(conv.CallSid, conv)
}

func (c *Conversations) Load(callSid string) (*Conversation, bool) {
	v, ok := c.calls.Load(callSid)
	if !ok {
		return nil, false
	}
	return v.(*Conversation), true
}

func (c *Conversations) LoadAndDelete(callSid string) (*Conversation, bool) {
	v, ok := c.calls.LoadAndDelete(callSid)
	if !ok {
		return nil, false
	}
	return v.(*Conversation), true
}

// HandleOutboundCall stores the config from the job metadata and dials the
// number in it. Twilio then asks /outbound-call-twiml where to stream media
// and reports the end of the call to /call-status.
func HandleOutboundCall(cfg *config.Config, s store.Store, phone Telephony, convs *Conversations) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metadata, err := readMetadata(w, r)
		if err != nil {
			writeBodyError(w, err)
			return
		}

		job := agentconfig.ParseJobMetadata(metadata)
		if job.Dial.PhoneNumber == "" {
			writeErrorResponse(w, http.StatusBadRequest, "phone number is required", nil)
			return
		}

		configID, err := s.Save(r.Context(), job.Config)
		if err != nil {
			zap.L().Error("Failed to save agent config", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, "failed to save agent config", err)
			return
		}

		host := publicHost(cfg, r)
		twimlURL := fmt.Sprintf("https://%s/outbound-call-twiml?config_id=%s&number=%s",
			host, url.QueryEscape(configID), url.QueryEscape(job.Dial.PhoneNumber))
		statusURL := fmt.Sprintf("https://%s/call-status", host)

		callSid, err := phone.PlaceCall(job.Dial.PhoneNumber, twimlURL, statusURL)
		if err != nil {
			zap.L().Error("Failed to create Twilio call", zap.Error(err))
			releaseConfig(r.Context(), s, configID)
			writeErrorResponse(w, http.StatusBadGateway, "failed to initiate call", err)
			return
		}

		convs.Store(&Conversation{
			CallSid:    callSid,
			ConfigID:   configID,
			Number:     job.Dial.PhoneNumber,
			TransferTo: job.Dial.TransferTo,
			OwnsConfig: true,
		})

		zap.L().Info("Outbound call initiated",
			zap.String("call_sid", callSid),
			zap.String("config_id", configID),
			zap.String("agent", job.Config.AgentName),
			zap.String("company", job.Config.Company.Name),
			zap.String("schema", string(job.Schema)))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"message":   "Call initiated",
			"callSid":   callSid,
			"config_id": configID,
		})
	})
}

// HandleOutboundCallTwiml points the answered call's media stream at the
// voice runtime, passing the config id along.
func HandleOutboundCallTwiml(cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.RuntimeStreamURL == "" {
			zap.L().Error("RUNTIME_STREAM_URL is not configured")
			rejectCall(w, "Sorry, this call cannot be completed right now.")
			return
		}

		doc, err := voice.StreamTwiML(cfg.RuntimeStreamURL, map[string]string{
			"config_id": r.URL.Query().Get("config_id"),
			"number":    r.URL.Query().Get("number"),
		})
		writeTwiML(w, doc, err)
	})
}

func publicHost(cfg *config.Config, r *http.Request) string {
	if cfg.PublicHost != "" {
		return cfg.PublicHost
	}
	return r.Host
}

// releaseConfig drops a config saved for a single call. Failures are only
// logged; the caller has already answered or is about to.
func releaseConfig(ctx context.Context, s store.Store, configID string) {
	if err := s.Delete(context.WithoutCancel(ctx), configID); err != nil {
		zap.L().Warn("Failed to delete agent config", zap.String("config_id", configID), zap.Error(err))
	}
}
