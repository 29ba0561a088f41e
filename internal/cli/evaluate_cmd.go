package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/cli/formatter"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/snapshot"
	"github.com/spf13/cobra"
)

func newEvaluateCmd(a *App) *cobra.Command {
	var surface, programID, now string
	var dryRun, asJSON bool

	cmd := &cobra.Command{
		Use:   "evaluate <snapshot-file>",
		Short: "Evaluate a user state snapshot and show the nudges to display",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := a.location()
			snap, err := snapshot.LoadSnapshot(args[0], loc)
			if errors.Is(err, snapshot.ErrInvalidSnapshot) {
				return &app.EvaluateError{Code: app.ErrInvalidSnapshot, Message: args[0], Err: err}
			}
			if err != nil {
				return err
			}

			req := app.NewEvaluateRequest(snap)
			req.Surface = domain.Surface(surface)
			req.ProgramID = programID
			req.DryRun = dryRun
			if req.Now, err = parseNow(now, loc); err != nil {
				return err
			}

			resp, err := a.Nudges.Evaluate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvaluation(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&surface, "surface", string(domain.SurfaceDashboard), "Display surface: dashboard or inline")
	cmd.Flags().StringVar(&programID, "program", "", "Only show nudges about this program ID")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate without recording shows")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")
	addNowFlag(cmd.Flags(), &now)

	return cmd
}
