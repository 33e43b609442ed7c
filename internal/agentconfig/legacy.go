package agentconfig

// Defaults applied when the legacy metadata leaves a field out.
const (
	LegacyCompanyName        = "Our Company"
	LegacyCommunicationStyle = "warm and professional"
	LegacyCallPurpose        = "general inquiry"
	LegacyIndustry           = "real estate"
)

var legacyTraits = []string{"professional", "friendly", "consultative"}

// FromLegacyMetadata converts the flat metadata schema that predates the
// nested configuration:
//
//	{
//	  "phone_number": "...", "transfer_to": "...", "call_purpose": "...",
//	  "user_details": {"name": ..., "email": ..., "preferences": {...}, ...},
//	  "agent_config": {
//	    "agent_name": ..., "company_name": ..., "industry": ..., "custom_instructions": ...,
//	    "company_details": {"description": ..., "specialties": [...], "location": ..., "years_in_business": ...},
//	    "agent_personality": {"traits": [...], "communication_style": ...}
//	  }
//	}
//
// Every key is optional and a nil map is accepted.
func FromLegacyMetadata(metadata map[string]any) *AgentConfig {
	agent := getMap(metadata, "agent_config")
	company := getMap(agent, "company_details")
	personality := getMap(agent, "agent_personality")
	user := getMap(metadata, "user_details")

	cfg := &AgentConfig{
		AgentName: stringOr(agent, "agent_name", DefaultAgentName),
		Company: CompanyDetails{
			Name:            stringOr(agent, "company_name", LegacyCompanyName),
			Description:     getString(company, "description"),
			Specialties:     getStrings(company, "specialties"),
			Location:        getString(company, "location"),
			YearsInBusiness: getNonNegativeInt(company, "years_in_business"),
		},
		Personality: AgentPersonality{
			Traits:             getStrings(personality, "traits"),
			CommunicationStyle: stringOr(personality, "communication_style", LegacyCommunicationStyle),
		},
		Call: CallContext{
			Purpose: stringOr(metadata, "call_purpose", LegacyCallPurpose),
		},
		User: UserContext{
			Name:                 getString(user, "name"),
			Email:                getString(user, "email"),
			Phone:                getString(user, "phone"),
			Preferences:          getMap(user, "preferences"),
			PreviousInteractions: getStrings(user, "previous_interactions"),
			Notes:                getString(user, "notes"),
		},
		Industry:           stringOr(agent, "industry", LegacyIndustry),
		CustomInstructions: getString(agent, "custom_instructions"),
		Language:           DefaultLanguage,
	}
	if _, ok := personality["traits"]; !ok {
		cfg.Personality.Traits = append([]string(nil), legacyTraits...)
	}
	return cfg
}

func stringOr(m map[string]any, key, fallback string) string {
	if s := getString(m, key); s != "" {
		return s
	}
	return fallback
}
