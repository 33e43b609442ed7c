// Package voice hands a generated prompt over to the external voice runtime
// and keeps the thin telephony calls the service needs. Audio never passes
// through this package.
package voice

import (
	"strings"

	"phonenix/internal/agentconfig"
	"phonenix/internal/ai"
)

// Initiation is the conversation_initiation_client_data message that
// overrides the runtime agent's prompt for one conversation.
type Initiation struct {
	Type                       string `json:"type"`
	ConversationConfigOverride struct {
		Agent struct {
			Prompt struct {
				Prompt string `json:"prompt"`
			} `json:"prompt"`
			FirstMessage string `json:"first_message"`
			Language     string `json:"language,omitempty"`
		} `json:"agent"`
	} `json:"conversation_config_override"`
	DynamicVariables map[string]string `json:"dynamic_variables,omitempty"`
}

// NewInitiation renders the prompt and opening line for cfg. callerPhone may
// be empty.
func NewInitiation(cfg *agentconfig.AgentConfig, callerPhone string) Initiation {
	msg := Initiation{
		Type: "conversation_initiation_client_data",
	}
	msg.ConversationConfigOverride.Agent.Prompt.Prompt = ai.BuildPrompt(cfg)
	msg.ConversationConfigOverride.Agent.FirstMessage = ai.FirstMessage(cfg)
	if cfg != nil {
		msg.ConversationConfigOverride.Agent.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	}

	vars := map[string]string{}
	if cfg != nil {
		setVar(vars, "agent_name", cfg.AgentName)
		setVar(vars, "company_name", cfg.Company.Name)
		setVar(vars, "user_name", cfg.User.Name)
		setVar(vars, "call_purpose", cfg.Call.Purpose)
	}
	setVar(vars, "caller_phone", callerPhone)
	if len(vars) > 0 {
		msg.DynamicVariables = vars
	}
	return msg
}

func setVar(vars map[string]string, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		vars[key] = value
	}
}
