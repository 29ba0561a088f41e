package cli

import (
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCelebrationsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "celebrations",
		Short: "List celebrations waiting in the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pending := a.Interactions.PendingCelebrations(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCelebrations(pending))
			return nil
		},
	}

	cmd.AddCommand(newCelebrationsDrainCmd(a))
	return cmd
}

func newCelebrationsDrainCmd(a *App) *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Show every queued celebration as one batch and clear the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseNow(now, a.location())
			if err != nil {
				return err
			}
			batch, err := a.Interactions.DrainCelebrations(cmd.Context(), nowOr(at))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCelebrationBatch(batch))
			return nil
		},
	}
	addNowFlag(cmd.Flags(), &now)
	return cmd
}
