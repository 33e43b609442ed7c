package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"phonenix/internal/agentconfig"
)

const (
	sectionSeparator = "\n\n"

	defaultTraits = "professional, friendly, and consultative"
	defaultStyle  = "warm, clear, and professional"
	defaultTone   = "professional"
)

var generalTools = []string{
	"end_call: **MOST IMPORTANT** - Call this when the user wants to end the call, says goodbye, or conversation is complete. ALWAYS call this to properly end calls.",
	"transfer_call: Transfer to a human agent after confirming with user, then call end_call.",
	"schedule_consultation: Schedule a consultation meeting when user wants to meet (needs: consultation_type, date, time).",
	"send_email: Send email to user when requested or for follow-up materials (needs: email_to, subject, body).",
	"detected_answering_machine: Call when you detect voicemail AFTER hearing the greeting.",
}

// BuildPrompt assembles the system prompt handed to the voice runtime.
//
// Sections, in order: identity, company details, personality, industry
// knowledge, call context, client information, call guidelines and custom
// instructions. Sections without data are left out rather than rendered
// empty. The result depends only on cfg.
func BuildPrompt(cfg *agentconfig.AgentConfig) string {
	if cfg == nil {
		cfg = &agentconfig.AgentConfig{}
	}

	sections := []string{
		identitySection(cfg),
		companySection(cfg.Company),
		personalitySection(cfg.Personality),
		industrySection(cfg.Industry),
		callSection(cfg.Call),
		userSection(cfg.User),
		guidelinesSection(cfg),
		strings.TrimSpace(cfg.CustomInstructions),
	}

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sectionSeparator)
}

func identitySection(cfg *agentconfig.AgentConfig) string {
	name := strings.TrimSpace(cfg.AgentName)
	if name == "" {
		name = agentconfig.DefaultAgentName
	}

	return fmt.Sprintf(
		"You are %s, a %s %sprofessional representing %s. Your interface with the user is by telephony (voice call).",
		name, traitList(cfg.Personality.Traits), industryPrefix(cfg.Industry), companyName(cfg.Company),
	)
}

func companySection(c agentconfig.CompanyDetails) string {
	if !c.HasDetails() {
		return ""
	}

	var b strings.Builder
	b.WriteString("Company Details:")
	line(&b, "Description", c.Description)
	line(&b, "Specialties", strings.Join(c.Specialties, ", "))
	line(&b, "Service Area", c.Location)
	if c.YearsInBusiness > 0 {
		line(&b, "Experience", fmt.Sprintf("%d years in business", c.YearsInBusiness))
	}
	line(&b, "Website", c.Website)
	line(&b, "Phone", c.Phone)
	line(&b, "Email", c.Email)
	line(&b, "Mission", c.MissionStatement)
	line(&b, "Company Values", strings.Join(c.Values, ", "))
	return b.String()
}

func personalitySection(p agentconfig.AgentPersonality) string {
	style := strings.TrimSpace(p.CommunicationStyle)
	if style == "" {
		style = defaultStyle
	}
	tone := strings.TrimSpace(p.Tone)
	if tone == "" {
		tone = defaultTone
	}

	var b strings.Builder
	b.WriteString("Personality & Communication Style:")
	bullet(&b, "You are "+style)
	bullet(&b, approach(p.Traits)+" in your approach")
	line(&b, "Tone", tone)
	line(&b, "Expertise level", p.ExpertiseLevel)
	line(&b, "Response pace", p.ResponseSpeed)
	bullet(&b, "Focused on understanding the client's needs and providing value")
	bullet(&b, "Respectful of their time and preferences")
	return b.String()
}

func industrySection(industry string) string {
	k, ok := lookupIndustry(industry)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("Industry Knowledge:")
	for _, item := range k.Knowledge {
		bullet(&b, item)
	}
	return b.String()
}

func callSection(c agentconfig.CallContext) string {
	purpose := strings.TrimSpace(c.Purpose)
	if purpose == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("Call Context:")
	line(&b, "Purpose", purpose)
	line(&b, "Priority", c.Priority)
	line(&b, "Expected duration", c.ExpectedDuration)
	line(&b, "Key points to cover", strings.Join(c.KeyPoints, "; "))
	line(&b, "Success metrics", strings.Join(c.SuccessMetrics, "; "))
	if c.FollowUpRequired {
		bullet(&b, "A follow-up is required: agree on the next step and its timing before the call ends")
	}
	if script := strings.TrimSpace(c.CallScript); script != "" {
		b.WriteString("\nCall Script (follow it closely):\n")
		b.WriteString(script)
	}
	return b.String()
}

func userSection(u agentconfig.UserContext) string {
	if u.IsZero() {
		return ""
	}

	var b strings.Builder
	b.WriteString("Client Information:")
	line(&b, "Client Name", u.Name)
	line(&b, "Client Email", u.Email)
	line(&b, "Client Phone", u.Phone)
	line(&b, "Client Preferences", jsonText(u.Preferences))
	line(&b, "Demographics", jsonText(u.Demographics))
	line(&b, "Previous Interactions", strings.Join(u.PreviousInteractions, "; "))
	line(&b, "Additional Notes", u.Notes)
	line(&b, "Pain Points", strings.Join(u.PainPoints, ", "))
	line(&b, "Client Goals", strings.Join(u.Goals, ", "))
	line(&b, "Budget", u.Budget)
	line(&b, "Timeline", u.Timeline)
	return b.String()
}

func guidelinesSection(cfg *agentconfig.AgentConfig) string {
	var b strings.Builder
	b.WriteString("Call Guidelines:\n")
	fmt.Fprintf(&b, "Your goal is to engage with the client about their %sneeds and provide helpful information or schedule follow-up activities as appropriate.\n", industryPrefix(cfg.Industry))
	b.WriteString("Always be polite and professional. Allow the user to end the conversation when they're ready.")

	if lang := languageName(cfg.Language); lang != "" {
		bullet(&b, "Speak "+lang+" for the whole call unless the client asks to switch")
	}
	if tz := strings.TrimSpace(cfg.Timezone); tz != "" {
		bullet(&b, "Use the "+tz+" timezone when proposing or confirming times")
	}

	if len(cfg.ComplianceRequirements) > 0 {
		b.WriteString("\n\nCompliance Requirements (never skip these):")
		for _, r := range cfg.ComplianceRequirements {
			if r = strings.TrimSpace(r); r != "" {
				bullet(&b, r)
			}
		}
	}

	b.WriteString("\n\nAvailable Tools (use when appropriate):")
	for _, tool := range generalTools {
		bullet(&b, tool)
	}
	if k, ok := lookupIndustry(cfg.Industry); ok {
		for _, tool := range k.Tools {
			bullet(&b, tool)
		}
	}
	return b.String()
}

// helpers

func line(b *strings.Builder, label, value string) {
	if value = strings.TrimSpace(value); value == "" {
		return
	}
	b.WriteString("\n- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
}

func bullet(b *strings.Builder, text string) {
	b.WriteString("\n- ")
	b.WriteString(text)
}

func traitList(traits []string) string {
	cleaned := make([]string, 0, len(traits))
	for _, t := range traits {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return defaultTraits
	}
	return strings.Join(cleaned, ", ")
}

func approach(traits []string) string {
	list := traitList(traits)
	if list == defaultTraits {
		return "Professional, friendly and consultative"
	}
	return strings.ReplaceAll(list, ", ", " and ")
}

func industryPrefix(industry string) string {
	if industry = strings.TrimSpace(industry); industry == "" {
		return ""
	}
	return industry + " "
}

func companyName(c agentconfig.CompanyDetails) string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return "our company"
}

// jsonText renders a free-form mapping; encoding/json sorts map keys, which
// keeps the prompt stable between calls.
func jsonText(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return fmt.Sprint(m)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

var languageNames = map[string]string{
	"de": "German",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
}

// languageName returns "" for English, the default of the runtime.
func languageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "en" || strings.HasPrefix(code, "en-") {
		return ""
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "the language with code " + code
}
