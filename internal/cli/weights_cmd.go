package cli

import (
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newWeightsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Show the priority weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeights(p))
			return nil
		},
	}

	cmd.AddCommand(newWeightsSetCmd(a))
	return cmd
}

func newWeightsSetCmd(a *App) *cobra.Command {
	var urgency, relevance, engagement, recency float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more priority weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("urgency") {
				p.WeightUrgency = urgency
			}
			if flags.Changed("relevance") {
				p.WeightRelevance = relevance
			}
			if flags.Changed("engagement") {
				p.WeightEngagement = engagement
			}
			if flags.Changed("recency") {
				p.WeightRecency = recency
			}

			if err := a.Profiles.Update(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeights(p))
			return nil
		},
	}

	cmd.Flags().Float64Var(&urgency, "urgency", 0, "Weight of the urgency sub-score")
	cmd.Flags().Float64Var(&relevance, "relevance", 0, "Weight of the stage relevance sub-score")
	cmd.Flags().Float64Var(&engagement, "engagement", 0, "Weight of the engagement sub-score")
	cmd.Flags().Float64Var(&recency, "recency", 0, "Weight of the recency sub-score")
	cmd.MarkFlagsOneRequired("urgency", "relevance", "engagement", "recency")
	return cmd
}
