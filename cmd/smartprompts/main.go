package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/cli"
	"github.com/alexanderramin/smartprompts/internal/config"
	"github.com/alexanderramin/smartprompts/internal/db"
	"github.com/alexanderramin/smartprompts/internal/frequency"
	"github.com/alexanderramin/smartprompts/internal/repository"
	"github.com/alexanderramin/smartprompts/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logOut := io.Discard
	if cfg.LogEvents {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))
	observer := service.NewLogUseCaseObserver(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	uow := db.NewSQLiteUnitOfWork(database)
	store := repository.NewSQLitePromptStore(database, uow)
	profileRepo := repository.NewSQLitePriorityProfileRepo(database)

	// Wire services
	freq := frequency.NewManager(store, cfg.Frequency(), logger)
	cat := catalog.Default()

	app := &cli.App{
		Nudges: service.NewNudgeService(cat, freq, profileRepo, service.NudgeServiceOptions{
			Location: loc,
			Logger:   logger,
		}, observer),
		Interactions: service.NewInteractionService(freq, observer),
		Profiles:     service.NewProfileService(profileRepo),
		Catalog:      cat,
		Location:     loc,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
