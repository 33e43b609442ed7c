package api

import (
	"net/http"

	h "phonenix/internal/api/handlers"
	"phonenix/internal/config"
	"phonenix/internal/middleware"
	"phonenix/internal/store"
)

// Deps are the external services the handlers talk to.
type Deps struct {
	Store     store.Store
	Runtime   h.SignedURLProvider
	Telephony h.Telephony
}

func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	mux := http.NewServeMux()
	convs := &h.Conversations{}

	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Prompts
	mux.Handle("POST /prompts", h.HandleRenderPrompt())
	mux.Handle("GET /templates", h.HandleListTemplates())

	// Stored configs
	mux.Handle("POST /configs", h.HandleSaveConfig(deps.Store))
	mux.Handle("GET /configs/{id}", h.HandleGetConfig(deps.Store))
	mux.Handle("GET /configs/{id}/prompt", h.HandleConfigPrompt(deps.Store))
	mux.Handle("DELETE /configs/{id}", h.HandleDeleteConfig(deps.Store))

	// ElevenLabs
	mux.Handle("POST /sessions", h.HandleCreateSession(deps.Store, deps.Runtime))

	// Twilio
	mux.Handle("POST /incoming-call", h.HandleInboundCall(cfg, deps.Store, convs))
	mux.Handle("POST /outbound-call", h.HandleOutboundCall(cfg, deps.Store, deps.Telephony, convs))
	mux.Handle("POST /outbound-call-twiml", h.HandleOutboundCallTwiml(cfg))
	mux.Handle("POST /calls/{sid}/transfer", h.HandleTransferCall(deps.Telephony, convs))
	mux.Handle("POST /call-status", h.HandleCallStatus(deps.Store, convs))

	var handler http.Handler = mux
	handler = middleware.Logging(handler)

	return handler
}
