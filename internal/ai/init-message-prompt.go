package ai

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"phonenix/internal/agentconfig"
)

// FirstMessage is the literal first sentence spoken by the agent, used by
// runtimes that take an opening line instead of a greeting instruction.
func FirstMessage(cfg *agentconfig.AgentConfig) string {
	if cfg == nil {
		cfg = &agentconfig.AgentConfig{}
	}

	greeting := "Hello"
	if name := strings.TrimSpace(cfg.User.Name); name != "" {
		greeting = "Hello " + name
	}

	msg := fmt.Sprintf("%s, this is %s from %s.", greeting, agentName(cfg), companyName(cfg.Company))
	if purpose := strings.TrimSpace(cfg.Call.Purpose); purpose != "" {
		msg += fmt.Sprintf(" I'm calling regarding %s.", lowerFirst(purpose))
	}
	return msg + " Do you have a moment to talk?"
}

func lowerFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	// keep acronyms such as "ROI review" intact
	if second, _ := utf8.DecodeRuneInString(s[size:]); unicode.IsUpper(first) && unicode.IsUpper(second) {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}
