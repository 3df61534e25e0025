package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newHistoryCmd creates the history subcommand group.
func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved changelog runs",
		Example: `  # Most recent runs
  chronicle history

  # Print the changelog of run 3 again
  chronicle history show 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			records, err := svc.History.List(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s  %-9s  %3d commits  %s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Provider, r.CommitCount, r.RepoPath)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the changelog saved for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}
			svc, err := openServices()
			if err != nil {
				return err
			}
			record, err := svc.History.GetByID(uint(id))
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("run %d not found", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), record.Changelog)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}
			svc, err := openServices()
			if err != nil {
				return err
			}
			return svc.History.DeleteByID(uint(id))
		},
	}

	cmd.AddCommand(show, remove)
	return cmd
}
