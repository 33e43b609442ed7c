package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8000"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	ElevenLabsAPIKey  string `envconfig:"ELEVENLABS_API_KEY"`
	ElevenLabsAgentID string `envconfig:"ELEVENLABS_AGENT_ID"`
	ElevenLabsBaseURL string `envconfig:"ELEVENLABS_BASE_URL" default:"https://api.elevenlabs.io"`

	TwilioAccountSID  string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `envconfig:"TWILIO_PHONE_NUMBER"`

	// RuntimeStreamURL is the websocket the voice runtime listens on for
	// Twilio media streams.
	RuntimeStreamURL string `envconfig:"RUNTIME_STREAM_URL"`
	// PublicHost overrides the request host in callback URLs given to Twilio.
	PublicHost string `envconfig:"PUBLIC_HOST"`

	// DatabaseURL selects the Postgres config store; empty keeps configs in memory.
	DatabaseURL string `envconfig:"DATABASE_URL"`
}

func Load() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	// Validate required environment variables
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) validate() error {
	required := map[string]string{
		"PORT": c.Port,
	}
	if c.IsProduction() {
		required["ELEVENLABS_API_KEY"] = c.ElevenLabsAPIKey
		required["ELEVENLABS_AGENT_ID"] = c.ElevenLabsAgentID
	}

	for name, value := range required {
		if value == "" {
			return fmt.Errorf("missing required environment variable: %s", name)
		}
	}

	return nil
}
