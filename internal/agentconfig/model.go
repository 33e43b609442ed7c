// Package agentconfig holds the structured configuration of a calling agent:
// who the company is, how the agent speaks, who is being called and why.
//
// All types are plain values. They are built once per call session, either
// from inbound job metadata or programmatically through the Builder and the
// template catalog, and are treated as read-only afterwards.
package agentconfig

const (
	DefaultLanguage  = "en"
	DefaultAgentName = "Professional Assistant"
)

type CompanyDetails struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Specialties      []string `json:"specialties"`
	Location         string   `json:"location"`
	YearsInBusiness  int      `json:"years_in_business"`
	Website          string   `json:"website"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email"`
	MissionStatement string   `json:"mission_statement"`
	Values           []string `json:"values"`
}

// HasDetails reports whether anything beyond the company name is set.
func (c CompanyDetails) HasDetails() bool {
	return c.Description != "" ||
		len(c.Specialties) > 0 ||
		c.Location != "" ||
		c.YearsInBusiness > 0 ||
		c.Website != "" ||
		c.Phone != "" ||
		c.Email != "" ||
		c.MissionStatement != "" ||
		len(c.Values) > 0
}

// AgentPersonality is purely descriptive. Tone is an open set (professional,
// friendly, casual, ...).
type AgentPersonality struct {
	Traits             []string `json:"traits"`
	CommunicationStyle string   `json:"communication_style"`
	Tone               string   `json:"tone"`
	ExpertiseLevel     string   `json:"expertise_level"`
	ResponseSpeed      string   `json:"response_speed"`
}

func (p AgentPersonality) IsZero() bool {
	return len(p.Traits) == 0 &&
		p.CommunicationStyle == "" &&
		p.Tone == "" &&
		p.ExpertiseLevel == "" &&
		p.ResponseSpeed == ""
}

type UserContext struct {
	Name                 string         `json:"name"`
	Email                string         `json:"email"`
	Phone                string         `json:"phone"`
	Preferences          map[string]any `json:"preferences"`
	PreviousInteractions []string       `json:"previous_interactions"`
	Notes                string         `json:"notes"`
	Demographics         map[string]any `json:"demographics"`
	PainPoints           []string       `json:"pain_points"`
	Goals                []string       `json:"goals"`
	Budget               string         `json:"budget"`
	Timeline             string         `json:"timeline"`
}

func (u UserContext) IsZero() bool {
	return u.Name == "" &&
		u.Email == "" &&
		u.Phone == "" &&
		len(u.Preferences) == 0 &&
		len(u.PreviousInteractions) == 0 &&
		u.Notes == "" &&
		len(u.Demographics) == 0 &&
		len(u.PainPoints) == 0 &&
		len(u.Goals) == 0 &&
		u.Budget == "" &&
		u.Timeline == ""
}

// CallContext describes why the call is made. An empty Purpose drops the
// call-context section from the prompt.
type CallContext struct {
	Purpose          string   `json:"purpose"`
	Priority         string   `json:"priority"`
	ExpectedDuration string   `json:"expected_duration"`
	FollowUpRequired bool     `json:"follow_up_required"`
	SuccessMetrics   []string `json:"success_metrics"`
	CallScript       string   `json:"call_script"`
	KeyPoints        []string `json:"key_points"`
}

// AgentConfig is the aggregate handed to the prompt builder.
type AgentConfig struct {
	AgentName              string           `json:"agent_name"`
	Company                CompanyDetails   `json:"company_details"`
	Personality            AgentPersonality `json:"agent_personality"`
	Call                   CallContext      `json:"call_context"`
	User                   UserContext      `json:"user_context"`
	Industry               string           `json:"industry"`
	CustomInstructions     string           `json:"custom_instructions"`
	Language               string           `json:"language"`
	Timezone               string           `json:"timezone"`
	ComplianceRequirements []string         `json:"compliance_requirements"`
}
