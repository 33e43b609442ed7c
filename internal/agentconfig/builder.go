package agentconfig

import (
	"slices"
	"strings"
)

// Builder stages an AgentConfig. Every setter returns the same *Builder so
// calls can be chained; nothing is validated until Build.
//
//	cfg, err := agentconfig.NewBuilder().
//		WithAgentName("Sarah").
//		WithCompany(agentconfig.RealEstateAgency()).
//		WithIndustry("real estate").
//		Build()
type Builder struct {
	draft AgentConfig
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithAgentName(name string) *Builder {
	b.draft.AgentName = name
	return b
}

func (b *Builder) WithCompany(company CompanyDetails) *Builder {
	b.draft.Company = company
	return b
}

func (b *Builder) WithPersonality(personality AgentPersonality) *Builder {
	b.draft.Personality = personality
	return b
}

func (b *Builder) WithCallContext(call CallContext) *Builder {
	b.draft.Call = call
	return b
}

func (b *Builder) WithUserContext(user UserContext) *Builder {
	b.draft.User = user
	return b
}

func (b *Builder) WithIndustry(industry string) *Builder {
	b.draft.Industry = industry
	return b
}

func (b *Builder) WithCustomInstructions(instructions string) *Builder {
	b.draft.CustomInstructions = instructions
	return b
}

func (b *Builder) WithLanguage(language string) *Builder {
	b.draft.Language = language
	return b
}

func (b *Builder) WithTimezone(timezone string) *Builder {
	b.draft.Timezone = timezone
	return b
}

func (b *Builder) WithComplianceRequirements(requirements []string) *Builder {
	b.draft.ComplianceRequirements = requirements
	return b
}

// Build validates the draft and returns a copy of it. Only the agent name is
// required; everything else keeps its zero value, except the language which
// defaults to DefaultLanguage.
func (b *Builder) Build() (*AgentConfig, error) {
	if strings.TrimSpace(b.draft.AgentName) == "" {
		return nil, &ConfigurationError{Field: "agent_name", Message: "agent name is required"}
	}

	cfg := b.draft.Clone()
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	return cfg, nil
}

// Clone returns a deep copy so callers can customise a config without
// touching the original.
func (c *AgentConfig) Clone() *AgentConfig {
	out := *c
	out.Company.Specialties = slices.Clone(c.Company.Specialties)
	out.Company.Values = slices.Clone(c.Company.Values)
	out.Personality.Traits = slices.Clone(c.Personality.Traits)
	out.Call.SuccessMetrics = slices.Clone(c.Call.SuccessMetrics)
	out.Call.KeyPoints = slices.Clone(c.Call.KeyPoints)
	out.User.Preferences = copyMap(c.User.Preferences)
	out.User.Demographics = copyMap(c.User.Demographics)
	out.User.PreviousInteractions = slices.Clone(c.User.PreviousInteractions)
	out.User.PainPoints = slices.Clone(c.User.PainPoints)
	out.User.Goals = slices.Clone(c.User.Goals)
	out.ComplianceRequirements = slices.Clone(c.ComplianceRequirements)
	return &out
}
