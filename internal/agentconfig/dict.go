package agentconfig

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dictionary form.
//
// ToMap always emits every field, including empty ones, so the output of one
// service can be read by another without guessing which keys are optional.
// The FromMap functions are total: unknown keys are ignored and missing,
// null or mistyped values fall back to the zero value of the field.

func (c CompanyDetails) ToMap() map[string]any {
	return map[string]any{
		"name":              c.Name,
		"description":       c.Description,
		"specialties":       stringsToAny(c.Specialties),
		"location":          c.Location,
		"years_in_business": c.YearsInBusiness,
		"website":           c.Website,
		"phone":             c.Phone,
		"email":             c.Email,
		"mission_statement": c.MissionStatement,
		"values":            stringsToAny(c.Values),
	}
}

func CompanyDetailsFromMap(m map[string]any) CompanyDetails {
	return CompanyDetails{
		Name:             getString(m, "name"),
		Description:      getString(m, "description"),
		Specialties:      getStrings(m, "specialties"),
		Location:         getString(m, "location"),
		YearsInBusiness:  getNonNegativeInt(m, "years_in_business"),
		Website:          getString(m, "website"),
		Phone:            getString(m, "phone"),
		Email:            getString(m, "email"),
		MissionStatement: getString(m, "mission_statement"),
		Values:           getStrings(m, "values"),
	}
}

func (p AgentPersonality) ToMap() map[string]any {
	return map[string]any{
		"traits":              stringsToAny(p.Traits),
		"communication_style": p.CommunicationStyle,
		"tone":                p.Tone,
		"expertise_level":     p.ExpertiseLevel,
		"response_speed":      p.ResponseSpeed,
	}
}

func AgentPersonalityFromMap(m map[string]any) AgentPersonality {
	return AgentPersonality{
		Traits:             getStrings(m, "traits"),
		CommunicationStyle: getString(m, "communication_style"),
		Tone:               getString(m, "tone"),
		ExpertiseLevel:     getString(m, "expertise_level"),
		ResponseSpeed:      getString(m, "response_speed"),
	}
}

func (u UserContext) ToMap() map[string]any {
	return map[string]any{
		"name":                  u.Name,
		"email":                 u.Email,
		"phone":                 u.Phone,
		"preferences":           copyMap(u.Preferences),
		"previous_interactions": stringsToAny(u.PreviousInteractions),
		"notes":                 u.Notes,
		"demographics":          copyMap(u.Demographics),
		"pain_points":           stringsToAny(u.PainPoints),
		"goals":                 stringsToAny(u.Goals),
		"budget":                u.Budget,
		"timeline":              u.Timeline,
	}
}

func UserContextFromMap(m map[string]any) UserContext {
	return UserContext{
		Name:                 getString(m, "name"),
		Email:                getString(m, "email"),
		Phone:                getString(m, "phone"),
		Preferences:          getMap(m, "preferences"),
		PreviousInteractions: getStrings(m, "previous_interactions"),
		Notes:                getString(m, "notes"),
		Demographics:         getMap(m, "demographics"),
		PainPoints:           getStrings(m, "pain_points"),
		Goals:                getStrings(m, "goals"),
		Budget:               getString(m, "budget"),
		Timeline:             getString(m, "timeline"),
	}
}

func (c CallContext) ToMap() map[string]any {
	return map[string]any{
		"purpose":            c.Purpose,
		"priority":           c.Priority,
		"expected_duration":  c.ExpectedDuration,
		"follow_up_required": c.FollowUpRequired,
		"success_metrics":    stringsToAny(c.SuccessMetrics),
		"call_script":        c.CallScript,
		"key_points":         stringsToAny(c.KeyPoints),
	}
}

func CallContextFromMap(m map[string]any) CallContext {
	return CallContext{
		Purpose:          getString(m, "purpose"),
		Priority:         getString(m, "priority"),
		ExpectedDuration: getString(m, "expected_duration"),
		FollowUpRequired: getBool(m, "follow_up_required"),
		SuccessMetrics:   getStrings(m, "success_metrics"),
		CallScript:       getString(m, "call_script"),
		KeyPoints:        getStrings(m, "key_points"),
	}
}

func (c *AgentConfig) ToMap() map[string]any {
	return map[string]any{
		"agent_name":              c.AgentName,
		"company_details":         c.Company.ToMap(),
		"agent_personality":       c.Personality.ToMap(),
		"call_context":            c.Call.ToMap(),
		"user_context":            c.User.ToMap(),
		"industry":                c.Industry,
		"custom_instructions":     c.CustomInstructions,
		"language":                c.Language,
		"timezone":                c.Timezone,
		"compliance_requirements": stringsToAny(c.ComplianceRequirements),
	}
}

// AgentConfigFromMap reads the nested dictionary schema. A missing agent name
// becomes DefaultAgentName and a missing language becomes DefaultLanguage.
func AgentConfigFromMap(m map[string]any) *AgentConfig {
	cfg := &AgentConfig{
		AgentName:              getString(m, "agent_name"),
		Company:                CompanyDetailsFromMap(getMap(m, "company_details")),
		Personality:            AgentPersonalityFromMap(getMap(m, "agent_personality")),
		Call:                   CallContextFromMap(getMap(m, "call_context")),
		User:                   UserContextFromMap(getMap(m, "user_context")),
		Industry:               getString(m, "industry"),
		CustomInstructions:     getString(m, "custom_instructions"),
		Language:               getString(m, "language"),
		Timezone:               getString(m, "timezone"),
		ComplianceRequirements: getStrings(m, "compliance_requirements"),
	}
	if strings.TrimSpace(cfg.AgentName) == "" {
		cfg.AgentName = DefaultAgentName
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	return cfg
}

// MarshalJSON keeps the JSON form identical to the dictionary form.
func (c *AgentConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

// UnmarshalJSON accepts anything AgentConfigFromMap accepts; only malformed
// JSON is an error.
func (c *AgentConfig) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode agent config: %w", err)
	}
	*c = *AgentConfigFromMap(m)
	return nil
}

// coercion helpers

func getString(m map[string]any, key string) string {
	return toString(m[key])
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}
	return ""
}

func getStrings(m map[string]any, key string) []string {
	switch t := m[key].(type) {
	case []string:
		if len(t) == 0 {
			return nil
		}
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		var out []string
		for _, item := range t {
			switch v := item.(type) {
			case nil:
			case string:
				out = append(out, v)
			default:
				if s := toString(v); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

func getNonNegativeInt(m map[string]any, key string) int {
	n := toInt(m[key])
	if n < 0 {
		return 0
	}
	return n
}

func toInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint:
		return int(t)
	case uint32:
		return int(t)
	case uint64:
		if t > math.MaxInt {
			return math.MaxInt
		}
		return int(t)
	case float32:
		return int(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f)
		}
	}
	return 0
}

func getBool(m map[string]any, key string) bool {
	switch t := m[key].(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			return true
		}
	case int:
		return t != 0
	case float64:
		return t != 0
	}
	return false
}

func getMap(m map[string]any, key string) map[string]any {
	return toMap(m[key])
}

// toMap also accepts map[any]any, which some YAML decoders produce.
func toMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case map[any]any:
		if len(t) == 0 {
			return nil
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[toString(k)] = val
		}
		return out
	case map[string]string:
		if len(t) == 0 {
			return nil
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	}
	return nil
}

func copyMap(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func stringsToAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
