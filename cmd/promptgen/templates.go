package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"phonenix/internal/agentconfig"
	"phonenix/internal/ai"
)

func newTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List personality and company templates and known industries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listTemplates(cmd.OutOrStdout())
		},
	}
}

func listTemplates(w io.Writer) error {
	groups := []struct {
		title string
		names []string
	}{
		{"Personalities", agentconfig.PersonalityTemplateNames()},
		{"Companies", agentconfig.CompanyTemplateNames()},
		{"Industries", ai.KnownIndustries()},
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", g.title)
		for _, name := range g.names {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
