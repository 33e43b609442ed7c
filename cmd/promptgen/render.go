package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"phonenix/internal/agentconfig"
	"phonenix/internal/ai"
)

const (
	schemaAuto   = "auto"
	schemaNested = string(agentconfig.SchemaNested)
	schemaLegacy = string(agentconfig.SchemaLegacy)
)

func newRenderCommand() *cobra.Command {
	var (
		file   string
		schema string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the system prompt for a metadata file (JSON or YAML)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := loadJob(cmd.InOrStdin(), file, schema)
			if err != nil {
				return err
			}
			return printPrompt(cmd.OutOrStdout(), job, asJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Metadata file, - for stdin")
	cmd.Flags().StringVar(&schema, "schema", schemaAuto, "Metadata schema: auto, nested or legacy")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print prompt, first message and greeting as JSON")

	return cmd
}

func loadJob(stdin io.Reader, file, schema string) (*agentconfig.JobMetadata, error) {
	data, err := readInput(stdin, file)
	if err != nil {
		return nil, err
	}

	metadata, err := agentconfig.DecodeJobMetadata(data)
	if err != nil {
		return nil, err
	}

	job := agentconfig.ParseJobMetadata(metadata)
	switch schema {
	case schemaAuto, "":
	case schemaNested:
		job.Schema = agentconfig.SchemaNested
		job.Config = agentconfig.AgentConfigFromMap(metadata)
	case schemaLegacy:
		job.Schema = agentconfig.SchemaLegacy
		job.Config = agentconfig.FromLegacyMetadata(metadata)
	default:
		return nil, fmt.Errorf("unknown schema %q (want auto, nested or legacy)", schema)
	}
	return job, nil
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" || file == "" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	return data, nil
}

func printPrompt(w io.Writer, job *agentconfig.JobMetadata, asJSON bool) error {
	prompt := ai.BuildPrompt(job.Config)
	if !asJSON {
		_, err := fmt.Fprintln(w, prompt)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]string{
		"schema":               string(job.Schema),
		"agent_name":           job.Config.AgentName,
		"system_prompt":        prompt,
		"first_message":        ai.FirstMessage(job.Config),
		"greeting_instruction": ai.GreetingInstruction(job.Config),
	})
}
