package cmd

import (
	"github.com/spf13/cobra"

	"chronicle/internal/database"
	"chronicle/internal/services"
)

// NewRootCmd creates the root command for chronicle.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chronicle",
		Short: "AI-generated changelogs from git history",
		Long: `Chronicle reads recent commits from a git repository, scores them for
significance, and asks a language model to write a user-facing changelog.`,
		Example: `  # Changelog for the last 10 commits, printed as Markdown
  chronicle generate 10

  # Plain text, written to a file, from another repository
  chronicle generate 25 --repo ../service --format plain --output CHANGELOG.txt

  # Use a different provider and model
  chronicle generate 10 --provider openai --model gpt-4o-mini

  # Store a credential in the OS keychain
  chronicle keys set anthropic`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(),
		newHistoryCmd(),
		newModelsCmd(),
		newKeysCmd(),
	)

	return root
}

// openServices opens the database and returns the service container. Every
// command that needs persistence goes through here so the connection and
// catalog setup stay in one place.
func openServices() (*services.DbServices, error) {
	db, err := database.Init(database.Config{})
	if err != nil {
		return nil, err
	}
	svc := services.NewDbServices(db)
	if err := svc.ModelConfigs.Startup(); err != nil {
		return nil, err
	}
	return svc, nil
}
