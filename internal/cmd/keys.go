package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chronicle/internal/services"
)

// newKeysCmd creates the keys subcommand group for keychain-stored
// credentials.
func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage provider API keys in the OS keychain",
		Long: `Keys stores provider credentials in the operating system keychain so
they never live in shell history or source files. Environment variables
still take precedence when set.`,
		Example: `  # Store a key (read from stdin, not from arguments)
  chronicle keys set anthropic

  # List providers with a stored key
  chronicle keys list

  # Remove a stored key
  chronicle keys delete anthropic`,
	}

	set := &cobra.Command{
		Use:   "set <provider>",
		Short: "Store an API key for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.ErrOrStderr(), "Paste the API key for %s and press enter:\n", args[0])
			reader := bufio.NewReader(cmd.InOrStdin())
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read key: %w", err)
			}
			key := strings.TrimSpace(line)
			if key == "" {
				return fmt.Errorf("no key provided")
			}
			if err := services.NewKeyringService().StoreAPIKey(args[0], key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Stored key for %s.\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List providers with a stored key",
		RunE: func(cmd *cobra.Command, args []string) error {
			providers, err := services.NewKeyringService().ListProviders()
			if err != nil {
				return err
			}
			if len(providers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored keys.")
				return nil
			}
			for _, p := range providers {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <provider>",
		Short: "Remove a stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.NewKeyringService().DeleteAPIKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Deleted key for %s.\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(set, list, del)
	return cmd
}
