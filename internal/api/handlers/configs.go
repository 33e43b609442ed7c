package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"phonenix/internal/agentconfig"
	"phonenix/internal/store"
)

// HandleSaveConfig stores a config sent in its dictionary form. The body goes
// through the builder so a config without an agent name is rejected.
func HandleSaveConfig(s store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metadata, err := readMetadata(w, r)
		if err != nil {
			writeBodyError(w, err)
			return
		}

		parsed := agentconfig.AgentConfigFromMap(metadata)
		cfg, err := agentconfig.NewBuilder().
			WithAgentName(strings.TrimSpace(stringField(metadata, "agent_name"))).
			WithCompany(parsed.Company).
			WithPersonality(parsed.Personality).
			WithCallContext(parsed.Call).
			WithUserContext(parsed.User).
			WithIndustry(parsed.Industry).
			WithCustomInstructions(parsed.CustomInstructions).
			WithLanguage(parsed.Language).
			WithTimezone(parsed.Timezone).
			WithComplianceRequirements(parsed.ComplianceRequirements).
			Build()
		if err != nil {
			writeErrorResponse(w, statusFor(err), "invalid agent config", err)
			return
		}

		id, err := s.Save(r.Context(), cfg)
		if err != nil {
			zap.L().Error("Failed to save agent config", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, "failed to save agent config", err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	})
}

func HandleGetConfig(s store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := loadConfig(w, r, s, r.PathValue("id"))
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, cfg.ToMap())
	})
}

func HandleConfigPrompt(s store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := loadConfig(w, r, s, r.PathValue("id"))
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newPromptResponse(cfg, ""))
	})
}

func HandleDeleteConfig(s store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.Delete(r.Context(), r.PathValue("id"))
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeErrorResponse(w, http.StatusNotFound, "agent config not found", nil)
		case err != nil:
			zap.L().Error("Failed to delete agent config", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, "failed to delete agent config", err)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
}

func loadConfig(w http.ResponseWriter, r *http.Request, s store.Store, id string) (*agentconfig.AgentConfig, bool) {
	if id == "" {
		writeErrorResponse(w, http.StatusBadRequest, "config id is required", nil)
		return nil, false
	}

	cfg, err := s.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "agent config not found", nil)
		return nil, false
	}
	if err != nil {
		zap.L().Error("Failed to load agent config", zap.String("config_id", id), zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, "failed to load agent config", err)
		return nil, false
	}
	return cfg, true
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
