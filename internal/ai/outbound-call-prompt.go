package ai

import (
	"fmt"
	"strings"

	"phonenix/internal/agentconfig"
)

// GreetingInstruction tells the runtime how to open an outbound call once the
// callee picks up.
func GreetingInstruction(cfg *agentconfig.AgentConfig) string {
	if cfg == nil {
		cfg = &agentconfig.AgentConfig{}
	}

	purpose := strings.TrimSpace(cfg.Call.Purpose)
	if purpose == "" {
		purpose = "their recent inquiry"
	}

	return fmt.Sprintf(
		"Greet %s warmly and introduce yourself as %s from %s. Mention that you're calling regarding %s and ask how you can help them today.",
		clientName(cfg.User, "the client"), agentName(cfg), companyName(cfg.Company), purpose,
	)
}

func clientName(u agentconfig.UserContext, fallback string) string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return fallback
}

func agentName(cfg *agentconfig.AgentConfig) string {
	if name := strings.TrimSpace(cfg.AgentName); name != "" {
		return name
	}
	return agentconfig.DefaultAgentName
}
