package cli

import (
	"time"

	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Nudges       service.NudgeService
	Interactions service.InteractionService
	Profiles     service.ProfileService
	Catalog      *catalog.Catalog

	// Location is used to read bare dates in snapshot files and --now.
	Location *time.Location

	// IsInteractive reports whether huh prompts may be shown. Nil means
	// never.
	IsInteractive func() bool
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "smartprompts" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "smartprompts",
		Short:         "Contextual nudges for CRNA applicants",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEvaluateCmd(app),
		newDismissCmd(app),
		newSnoozeCmd(app),
		newResetCmd(app),
		newHistoryCmd(app),
		newCelebrationsCmd(app),
		newCatalogCmd(app),
		newWeightsCmd(app),
	)

	return root
}
