package ai

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"phonenix/internal/agentconfig"
)

func TestGreetingInstruction(t *testing.T) {
	cfg := sarahConfig("real estate")
	cfg.User.Name = "Jane"

	assert.Equal(t,
		"Greet Jane warmly and introduce yourself as Sarah from Premier Realty Group. Mention that you're calling regarding Follow up on property inquiry and ask how you can help them today.",
		GreetingInstruction(cfg))

	assert.Contains(t, GreetingInstruction(nil), "Greet the client warmly")
	assert.Contains(t, GreetingInstruction(nil), "regarding their recent inquiry")
}

func TestInboundGreetingInstruction(t *testing.T) {
	assert.Equal(t,
		"Thank the caller for calling Premier Realty Group, introduce yourself as Sarah and ask how you can help them today.",
		InboundGreetingInstruction(sarahConfig("")))
}

func TestFirstMessage(t *testing.T) {
	cfg := sarahConfig("")
	cfg.User.Name = "Jane"
	assert.Equal(t,
		"Hello Jane, this is Sarah from Premier Realty Group. I'm calling regarding follow up on property inquiry. Do you have a moment to talk?",
		FirstMessage(cfg))

	cfg.Call.Purpose = "ROI review"
	assert.Contains(t, FirstMessage(cfg), "regarding ROI review.")

	assert.Equal(t,
		"Hello, this is "+agentconfig.DefaultAgentName+" from our company. Do you have a moment to talk?",
		FirstMessage(&agentconfig.AgentConfig{}))
}

func TestFirstMessageNonASCIIPurpose(t *testing.T) {
	tests := []struct {
		purpose string
		want    string
	}{
		{"über Ihre Police", "regarding über Ihre Police."},
		{"Über Ihre Police", "regarding über Ihre Police."},
		{"émission de votre contrat", "regarding émission de votre contrat."},
		{"日本の物件", "regarding 日本の物件."},
		{"ÉTÉ promotions", "regarding ÉTÉ promotions."},
		{"A new listing", "regarding a new listing."},
	}

	for _, tt := range tests {
		t.Run(tt.purpose, func(t *testing.T) {
			cfg := sarahConfig("")
			cfg.Call.Purpose = tt.purpose

			msg := FirstMessage(cfg)
			assert.True(t, utf8.ValidString(msg), msg)
			assert.Contains(t, msg, tt.want)
		})
	}
}
