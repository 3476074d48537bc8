package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"selectiongroup/internal/config"
	"selectiongroup/internal/eventbus"
	"selectiongroup/internal/selection"
	"selectiongroup/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, logPath string
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.StringVar(&logPath, "log", "selectiongroup.log", "Path to the log file")
	flag.Parse()

	if configPath == "" {
		configPath = config.DefaultPath()
	}

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Config ready: %s (%d items)", event.Path, event.ItemCount)
		}
	})
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionChangedEvent); ok {
			log.Printf("Selection changed at %d: added=%v removed=%v evicted=%v now=%v",
				event.Index, event.Added, event.Removed, event.Evicted, event.Selected)
		}
	})

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config %s: %v\n", configPath, err)
		os.Exit(1)
	}

	sel, err := selection.NewWithBus(cfg.SelectionOptions(), bus)
	if err != nil {
		fmt.Printf("Error creating selection: %v\n", err)
		os.Exit(1)
	}

	// Create UI model
	uiModel, err := ui.NewModel(bus, cfg, sel)
	if err != nil {
		fmt.Printf("Error creating UI: %v\n", err)
		os.Exit(1)
	}
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Handle termination signals; ctrl+c arrives as a key press
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	if os.Getenv("SELECTIONGROUP_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally, selected %v", sel.SelectedIndexes())
}

// loadOrCreateConfig loads the config file, writing the defaults first when
// it does not exist yet
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	path := configSvc.Path()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Printf("Creating default config at %s", path)
		if err := configSvc.Save(config.DefaultConfig()); err != nil {
			// Still usable with defaults
			log.Printf("Failed to save config: %v", err)
		}
	}
	return configSvc.Load()
}
