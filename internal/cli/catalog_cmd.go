package cli

import (
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/cli/formatter"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *App) *cobra.Command {
	var engine string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the prompt templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := a.Catalog
			if cat == nil {
				cat = catalog.Default()
			}
			defs := cat.All()
			if engine != "" {
				defs = cat.ByEngine(domain.EngineID(engine))
				if len(defs) == 0 {
					return fmt.Errorf("no prompts for engine %q", engine)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(defs))
			return nil
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "", "Only list prompts from this engine")
	return cmd
}
