package ai

import (
	"fmt"

	"phonenix/internal/agentconfig"
)

// InboundGreetingInstruction is the opening for calls the client placed.
func InboundGreetingInstruction(cfg *agentconfig.AgentConfig) string {
	if cfg == nil {
		cfg = &agentconfig.AgentConfig{}
	}

	return fmt.Sprintf(
		"Thank %s for calling %s, introduce yourself as %s and ask how you can help them today.",
		clientName(cfg.User, "the caller"), companyName(cfg.Company), agentName(cfg),
	)
}
