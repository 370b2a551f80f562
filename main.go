package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tasky/internal/cli"
	"tasky/internal/clock"
	"tasky/internal/config"
	"tasky/internal/logs"
	"tasky/internal/service"
	"tasky/internal/sheet"
	"tasky/internal/store"
	"tasky/internal/tui"
)

func main() {
	dirFlag := flag.String("dir", "", "Data directory (default ~/tasky)")
	storeFlag := flag.String("store", "", "Storage backend: json or sqlite")
	sheetFlag := flag.String("sheet", "", "Sheet to open directly in the TUI")
	flag.Parse()

	cfg, err := config.Load(config.CLIFlags{Dir: *dirFlag, Store: *storeFlag})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	if err := cfg.EnsureDir(); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if err := logs.Initialize(cfg.Dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	svc := service.NewSheetService(st, clock.System{}, sheet.RolloverOptions{
		SeedText: cfg.SeedText,
	})

	args := flag.Args()
	if len(args) > 0 {
		code := cli.Run(args, svc)
		st.Close()
		os.Exit(code)
	}

	defaultSheet := *sheetFlag
	if defaultSheet == "" {
		defaultSheet = cfg.DefaultSheet
	}

	logs.Logger.Println("Starting app in TUI mode")
	appModel := tui.NewAppModel(svc, defaultSheet)
	p := tea.NewProgram(appModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case "", "json":
		return store.NewFileStore(cfg.NotesDir())
	case "sqlite":
		return store.NewSQLiteStore(cfg.DBPath())
	default:
		return nil, fmt.Errorf("unknown store backend %q (want json or sqlite)", cfg.Store)
	}
}
