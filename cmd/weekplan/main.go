package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/weekplan/internal/logging"
	"github.com/sandeepkv93/weekplan/internal/persist"
	"github.com/sandeepkv93/weekplan/internal/store"
	"github.com/sandeepkv93/weekplan/internal/update"
)

func main() {
	cfg, err := update.LoadConfig(update.ConfigFilename)
	logger := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		logger.Fatal("invalid config", "file", update.ConfigFilename, "err", err)
	}

	s := store.New()
	adapter := persist.NewAdapter(s, logger)
	adapter.SetAutosaveEnabled(cfg.Autosave)

	program := tea.NewProgram(update.NewModel(s, adapter, cfg, logger))
	if _, err := program.Run(); err != nil {
		logger.Fatal("weekplan failed", "err", err)
	}
}
