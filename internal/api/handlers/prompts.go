package handlers

import (
	"net/http"

	"phonenix/internal/agentconfig"
	"phonenix/internal/ai"
)

type PromptResponse struct {
	AgentName    string `json:"agent_name"`
	CompanyName  string `json:"company_name"`
	Industry     string `json:"industry"`
	Schema       string `json:"schema,omitempty"`
	SystemPrompt string `json:"system_prompt"`
	FirstMessage string `json:"first_message"`
	Greeting     string `json:"greeting_instruction"`
}

type TemplatesResponse struct {
	Personalities []string `json:"personalities"`
	Companies     []string `json:"companies"`
	Industries    []string `json:"industries"`
}

func newPromptResponse(cfg *agentconfig.AgentConfig, schema agentconfig.Schema) PromptResponse {
	return PromptResponse{
		AgentName:    cfg.AgentName,
		CompanyName:  cfg.Company.Name,
		Industry:     cfg.Industry,
		Schema:       string(schema),
		SystemPrompt: ai.BuildPrompt(cfg),
		FirstMessage: ai.FirstMessage(cfg),
		Greeting:     ai.GreetingInstruction(cfg),
	}
}

// HandleRenderPrompt turns job metadata of either schema into a prompt.
func HandleRenderPrompt() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metadata, err := readMetadata(w, r)
		if err != nil {
			writeBodyError(w, err)
			return
		}

		job := agentconfig.ParseJobMetadata(metadata)
		writeJSON(w, http.StatusOK, newPromptResponse(job.Config, job.Schema))
	})
}

func HandleListTemplates() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, TemplatesResponse{
			Personalities: agentconfig.PersonalityTemplateNames(),
			Companies:     agentconfig.CompanyTemplateNames(),
			Industries:    ai.KnownIndustries(),
		})
	})
}
