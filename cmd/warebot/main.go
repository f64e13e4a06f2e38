package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/warebot/go-warebot/internal/audit"
	"github.com/warebot/go-warebot/internal/config"
	"github.com/warebot/go-warebot/internal/log"
	"github.com/warebot/go-warebot/pkg/discovery"
	"github.com/warebot/go-warebot/pkg/gadget"
	"github.com/warebot/go-warebot/pkg/skill"
	"github.com/warebot/go-warebot/pkg/store"
	"github.com/warebot/go-warebot/pkg/web"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "warebot.yaml", "Config file path")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log.Init(cfg.LogLevel)
	log.Info("warebot starting",
		"addr", cfg.Addr,
		"backend", cfg.StateBackend,
		"state", cfg.StatePath)

	// Document store
	var docStore store.Store
	switch cfg.StateBackend {
	case "sqlite":
		docStore, err = store.OpenSQLite(cfg.StatePath)
	default:
		docStore = store.NewJSONStore(cfg.StatePath)
	}
	if err != nil {
		log.Error("open document store", "error", err)
		os.Exit(1)
	}
	defer docStore.Close()

	// Optional collaborators
	var opts []skill.Option
	if cfg.ArchiveDir != "" {
		archive, err := store.NewArchive(cfg.ArchiveDir)
		if err != nil {
			log.Error("open archive", "error", err)
			os.Exit(1)
		}
		opts = append(opts, skill.WithArchive(archive))
	}
	if cfg.AuditPath != "" {
		auditor := audit.NewLogger(cfg.AuditPath)
		defer auditor.Close()
		opts = append(opts, skill.WithAudit(auditor))
	}

	dispatcher, err := skill.NewDispatcher(docStore, opts...)
	if err != nil {
		log.Error("build dispatcher", "error", err)
		os.Exit(1)
	}

	var discover *discovery.Client
	if cfg.DiscoveryURL != "" {
		discover, err = discovery.NewClient(cfg.DiscoveryURL, cfg.DiscoveryToken)
		if err != nil {
			log.Error("build discovery client", "error", err)
			os.Exit(1)
		}
	}

	server := web.NewServer(web.Config{
		Addr:       cfg.Addr,
		AuthSecret: cfg.AuthSecret,
		Dispatcher: dispatcher,
		Hub:        gadget.NewHub(),
		Discovery:  discover,
	})

	// Shut down cleanly on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
