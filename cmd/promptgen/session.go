package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phonenix/internal/config"
	"phonenix/internal/logger"
	"phonenix/internal/voice"
)

func newSessionCommand() *cobra.Command {
	var (
		file    string
		schema  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Open a voice runtime conversation with the rendered prompt and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.ElevenLabsAPIKey == "" || cfg.ElevenLabsAgentID == "" {
				return errors.New("ELEVENLABS_API_KEY and ELEVENLABS_AGENT_ID must be set")
			}
			if _, err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
				return err
			}
			defer zap.L().Sync()

			job, err := loadJob(cmd.InOrStdin(), file, schema)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := voice.NewElevenLabs(cfg.ElevenLabsAPIKey, cfg.ElevenLabsAgentID, cfg.ElevenLabsBaseURL)
			session, err := client.StartSession(ctx, voice.NewInitiation(job.Config, job.Dial.PhoneNumber))
			if err != nil {
				return err
			}
			defer session.Close()

			zap.L().Info("Conversation started",
				zap.String("conversation_id", session.ConversationID),
				zap.String("agent", job.Config.AgentName))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), session.ConversationID)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Metadata file, - for stdin")
	cmd.Flags().StringVar(&schema, "schema", schemaAuto, "Metadata schema: auto, nested or legacy")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Time allowed to open the conversation")

	return cmd
}
