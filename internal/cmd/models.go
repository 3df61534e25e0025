package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newModelsCmd creates the models subcommand group.
func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List and toggle available models",
		Example: `  # Show the model catalog
  chronicle models

  # Disable a model so it cannot be selected
  chronicle models disable openai/gpt-4o-mini`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			groups, err := svc.ModelConfigs.ListModelGroups()
			if err != nil {
				return err
			}
			for _, group := range groups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", group.ProviderName)
				for _, m := range group.Models {
					state := "enabled"
					if !m.Enabled {
						state = "disabled"
					}
					marker := " "
					if m.Default {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %-40s %-10s %s\n", marker, m.Key, state, m.DisplayName)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(
		newModelsToggleCmd("enable", true),
		newModelsToggleCmd("disable", false),
	)
	return cmd
}

func newModelsToggleCmd(verb string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <model-key>",
		Short: capitalize(verb) + " a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			m, err := svc.ModelConfigs.SetModelEnabled(args[0], enabled)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %sd\n", m.Key, verb)
			return nil
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
