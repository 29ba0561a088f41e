package cli

import (
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDismissCmd(a *App) *cobra.Command {
	var forever bool
	var now string

	cmd := &cobra.Command{
		Use:   "dismiss <nudge-id>",
		Short: "Dismiss a nudge for the cooldown period, or for good with --forever",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseNow(now, a.location())
			if err != nil {
				return err
			}
			req := app.DismissRequest{NudgeID: args[0], Forever: forever, Now: at}

			resp, err := a.Interactions.Dismiss(cmd.Context(), req)
			if err != nil {
				return err
			}

			if resp.SuggestPermanent && !forever && a.interactive() {
				stop, err := runConfirm(
					"Stop showing this prompt?",
					fmt.Sprintf("You have dismissed %s %d times.", args[0], resp.Record.DismissCount),
				)
				if err != nil {
					return err
				}
				if stop {
					req.Forever = true
					if resp, err = a.Interactions.Dismiss(cmd.Context(), req); err != nil {
						return err
					}
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDismiss(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&forever, "forever", false, "Never show this nudge again")
	addNowFlag(cmd.Flags(), &now)
	return cmd
}

func newSnoozeCmd(a *App) *cobra.Command {
	var days int
	var now string

	cmd := &cobra.Command{
		Use:   "snooze <nudge-id>",
		Short: "Hide a nudge for a number of days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseNow(now, a.location())
			if err != nil {
				return err
			}
			rec, err := a.Interactions.Snooze(cmd.Context(), app.SnoozeRequest{NudgeID: args[0], Days: days, Now: at})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnooze(rec))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to snooze")
	addNowFlag(cmd.Flags(), &now)
	return cmd
}

func newResetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <nudge-id>",
		Short: "Forget every dismissal and snooze for a nudge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Interactions.Reset(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Reset "+args[0]+"."))
			return nil
		},
	}
}

func newHistoryCmd(a *App) *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored interaction records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseNow(now, a.location())
			if err != nil {
				return err
			}
			records := a.Interactions.History(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(records, nowOr(at)))
			return nil
		},
	}
	addNowFlag(cmd.Flags(), &now)
	return cmd
}
