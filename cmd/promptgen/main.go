// Command promptgen renders agent prompts from job metadata files without
// running the server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "promptgen",
		Short:         "Render voice agent prompts from job metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newRenderCommand(),
		newTemplatesCommand(),
		newSessionCommand(),
	)
	return cmd
}
