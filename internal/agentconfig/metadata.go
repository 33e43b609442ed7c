package agentconfig

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type Schema string

const (
	SchemaNested Schema = "nested"
	SchemaLegacy Schema = "legacy"
)

// DialInfo is the telephony part of the job metadata. It is carried by both
// schemas at the top level.
type DialInfo struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	TransferTo  string `json:"transfer_to,omitempty"`
}

// JobMetadata is what a call session is started with.
type JobMetadata struct {
	Schema Schema
	Config *AgentConfig
	Dial   DialInfo
}

// nestedKeys mark the nested schema when present as objects at the top level.
var nestedKeys = []string{"company_details", "agent_personality", "call_context", "user_context"}

// DetectSchema tells the two metadata layouts apart by shape alone.
func DetectSchema(metadata map[string]any) Schema {
	for _, key := range nestedKeys {
		if toMap(metadata[key]) != nil {
			return SchemaNested
		}
	}
	if _, ok := metadata["agent_config"]; ok {
		return SchemaLegacy
	}
	if _, ok := metadata["agent_name"]; ok {
		return SchemaNested
	}
	return SchemaLegacy
}

// ParseJobMetadata turns inbound metadata of either schema into a
// configuration plus dial info. It never fails; missing parts are defaulted.
//
// The nested schema may name presets with "personality_template" and
// "company_template"; an explicit section wins over a preset and unknown
// preset names are ignored.
func ParseJobMetadata(metadata map[string]any) *JobMetadata {
	job := &JobMetadata{
		Schema: DetectSchema(metadata),
		Dial: DialInfo{
			PhoneNumber: getString(metadata, "phone_number"),
			TransferTo:  getString(metadata, "transfer_to"),
		},
	}

	if job.Schema == SchemaLegacy {
		job.Config = FromLegacyMetadata(metadata)
		return job
	}

	job.Config = AgentConfigFromMap(metadata)
	if _, ok := metadata["agent_personality"]; !ok {
		if p, ok := PersonalityTemplate(getString(metadata, "personality_template")); ok {
			job.Config.Personality = p
		}
	}
	if _, ok := metadata["company_details"]; !ok {
		if c, ok := CompanyTemplate(getString(metadata, "company_template")); ok {
			job.Config.Company = c
		}
	}
	return job
}

// DecodeJobMetadata parses raw metadata as JSON, or as YAML when it is not a
// JSON object. Empty input is an empty mapping.
func DecodeJobMetadata(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	var m map[string]any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("decode job metadata: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("decode job metadata: %w", err)
		}
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
