package agentconfig

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullConfig() *AgentConfig {
	return &AgentConfig{
		AgentName:   "Alex Martinez",
		Company:     RealEstateAgency(),
		Personality: TechnicalExpert(),
		Call: CallContext{
			Purpose:          "Follow up on cloud migration proposal",
			Priority:         "high",
			ExpectedDuration: "15 minutes",
			FollowUpRequired: true,
			SuccessMetrics:   []string{"book a demo"},
			CallScript:       "Open with the ROI summary.",
			KeyPoints:        []string{"cost", "timeline"},
		},
		User: UserContext{
			Name:                 "Jane Doe",
			Email:                "jane.doe@email.com",
			Phone:                "+1-555-0123",
			Preferences:          map[string]any{"service_type": "premium"},
			PreviousInteractions: []string{"asked for pricing"},
			Notes:                "CTO needs ROI justification",
			Demographics:         map[string]any{"region": "west"},
			PainPoints:           []string{"legacy servers"},
			Goals:                []string{"cloud migration", "scalability"},
			Budget:               "$50k",
			Timeline:             "Q3",
		},
		Industry:               "technology",
		CustomInstructions:     "Focus on ROI.",
		Language:               "en",
		Timezone:               "America/Chicago",
		ComplianceRequirements: []string{"announce recording"},
	}
}

func TestAgentConfigRoundTrip(t *testing.T) {
	cases := map[string]*AgentConfig{
		"full":    fullConfig(),
		"minimal": {AgentName: "Sarah", Language: "en"},
		"template only": {
			AgentName:   "Sarah",
			Language:    "de",
			Company:     InsuranceCompany(),
			Personality: CustomerService(),
		},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			got := AgentConfigFromMap(cfg.ToMap())
			if diff := cmp.Diff(cfg, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAgentConfigJSONRoundTrip(t *testing.T) {
	cfg := fullConfig()

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var got AgentConfig
	require.NoError(t, json.Unmarshal(data, &got))

	if diff := cmp.Diff(cfg, &got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("json round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToMapIncludesEveryField(t *testing.T) {
	m := (&AgentConfig{}).ToMap()

	for _, key := range []string{
		"agent_name", "company_details", "agent_personality", "call_context", "user_context",
		"industry", "custom_instructions", "language", "timezone", "compliance_requirements",
	} {
		assert.Contains(t, m, key)
	}
	assert.Len(t, m["company_details"], 10)
	assert.Len(t, m["agent_personality"], 5)
	assert.Len(t, m["call_context"], 7)
	assert.Len(t, m["user_context"], 11)
}

func TestAgentConfigFromMapDefaults(t *testing.T) {
	cfg := AgentConfigFromMap(nil)

	assert.Equal(t, DefaultAgentName, cfg.AgentName)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Empty(t, cfg.Industry)
	assert.True(t, cfg.Personality.IsZero())
	assert.True(t, cfg.User.IsZero())
	assert.False(t, cfg.Company.HasDetails())
}

func TestFromMapToleratesMistypedValues(t *testing.T) {
	cfg := AgentConfigFromMap(map[string]any{
		"agent_name":    "Sarah",
		"unknown_field": []int{1, 2, 3},
		"company_details": map[string]any{
			"name":              42,
			"years_in_business": "15",
			"specialties":       "condos",
			"values":            []any{"trust", nil, 3},
		},
		"agent_personality": "not a map",
		"call_context": map[string]any{
			"purpose":            "Follow up",
			"follow_up_required": "yes",
			"key_points":         map[string]any{"x": 1},
		},
		"user_context": map[any]any{
			"name":        "Robert",
			"preferences": map[string]string{"contact": "email"},
		},
		"compliance_requirements": nil,
	})

	assert.Equal(t, "Sarah", cfg.AgentName)
	assert.Equal(t, "42", cfg.Company.Name)
	assert.Equal(t, 15, cfg.Company.YearsInBusiness)
	assert.Equal(t, []string{"condos"}, cfg.Company.Specialties)
	assert.Equal(t, []string{"trust", "3"}, cfg.Company.Values)
	assert.True(t, cfg.Personality.IsZero())
	assert.Equal(t, "Follow up", cfg.Call.Purpose)
	assert.True(t, cfg.Call.FollowUpRequired)
	assert.Nil(t, cfg.Call.KeyPoints)
	assert.Equal(t, "Robert", cfg.User.Name)
	assert.Equal(t, map[string]any{"contact": "email"}, cfg.User.Preferences)
	assert.Nil(t, cfg.ComplianceRequirements)
}

func TestYearsInBusinessCoercion(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{15, 15},
		{float64(12), 12},
		{json.Number("8"), 8},
		{" 20 ", 20},
		{"abc", 0},
		{-3, 0},
		{nil, 0},
		{true, 0},
	}

	for _, tc := range cases {
		got := CompanyDetailsFromMap(map[string]any{"years_in_business": tc.in})
		assert.Equal(t, tc.want, got.YearsInBusiness, "input %#v", tc.in)
	}
}

func TestToMapDoesNotAliasSlices(t *testing.T) {
	cfg := fullConfig()
	m := cfg.ToMap()

	m["compliance_requirements"].([]any)[0] = "changed"
	m["user_context"].(map[string]any)["preferences"].(map[string]any)["service_type"] = "basic"

	assert.Equal(t, "announce recording", cfg.ComplianceRequirements[0])
	assert.Equal(t, "premium", cfg.User.Preferences["service_type"])
}
