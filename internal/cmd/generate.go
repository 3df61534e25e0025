package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"chronicle/internal/config"
	"chronicle/internal/models"
	"chronicle/internal/services"
)

// newGenerateCmd creates the generate subcommand, the main pipeline.
func newGenerateCmd() *cobra.Command {
	var (
		format   string
		output   string
		repoPath string
		provider string
		model    string
		capN     int
		timeout  time.Duration
		noSave   bool
	)

	cmd := &cobra.Command{
		Use:   "generate <commit-count>",
		Short: "Generate a changelog from the last N commits",
		Long: `Generate fetches the last N commits of a repository, filters and scores
them for significance, and asks the configured model for a changelog.

The result is printed to stdout or written to --output. Nothing is written
when any stage fails.`,
		Example: `  # Last 10 commits of the current repository
  chronicle generate 10

  # Cap the prompt at the 15 most significant commits
  chronicle generate 50 --cap 15

  # Do not record the run in local history
  chronicle generate 10 --no-save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return &config.ConfigError{Reason: fmt.Sprintf("commit count must be a positive integer, got %q", args[0])}
			}

			outFormat := models.OutputFormat(format)
			if !outFormat.Valid() {
				return &config.ConfigError{Reason: fmt.Sprintf("format must be %q or %q, got %q", models.FormatMarkdown, models.FormatPlain, format)}
			}

			gitSvc := services.NewGitService()

			// Repository problems surface before credentials are read or
			// any request is built.
			if err := gitSvc.ValidateRepository(repoPath); err != nil {
				return err
			}

			keyringSvc := services.NewKeyringService()
			cfg, err := config.Load(provider, keyringSvc)
			if err != nil {
				return err
			}
			if timeout > 0 {
				cfg.Timeout = timeout
			}
			if model == "" {
				model = cfg.Model
			}

			svc, err := openServices()
			if err != nil {
				return err
			}

			resolved, err := svc.ModelConfigs.Resolve(cfg.Provider, model)
			if err != nil {
				return err
			}
			if !resolved.Enabled {
				return &config.ConfigError{Reason: fmt.Sprintf("model %s is disabled, enable it with `chronicle models enable %s`", resolved.Key, resolved.Key)}
			}

			ctx := cmd.Context()
			gen, err := services.NewGenerator(ctx, cfg, resolved.APIName)
			if err != nil {
				return err
			}

			progress := func(format string, args ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
			}
			progress("Fetching the last %d commits...", n)

			pipeline := services.NewChangelogService(gitSvc, services.NewScoreService(capN), svc.History)
			result, err := pipeline.Generate(ctx, services.GenerateRequest{
				RepoPath: repoPath,
				Count:    n,
				Format:   outFormat,
				Provider: cfg.Provider,
				ModelKey: resolved.Key,
				Save:     !noSave,
			}, gen)
			if errors.Is(err, services.ErrNoCommits) {
				progress("No commits found.")
				return nil
			}
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(result.Output), 0o644); err != nil {
					return fmt.Errorf("write changelog: %w", err)
				}
				progress("Changelog for %d commits written to %s", result.CommitCount, output)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(models.FormatMarkdown), "Output format (markdown|plain)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the changelog to a file instead of stdout")
	cmd.Flags().StringVar(&repoPath, "repo", ".", "Path to the git repository")
	cmd.Flags().StringVar(&provider, "provider", "", "Generation provider (anthropic, openai, gemini, proxy)")
	cmd.Flags().StringVar(&model, "model", "", "Model to use (catalog key or provider model name)")
	cmd.Flags().IntVar(&capN, "cap", services.DefaultCap, "Maximum commits included in the prompt")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Generation request timeout (e.g. 90s)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record this run in local history")

	return cmd
}
