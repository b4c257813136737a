package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"compliscan/scan-engine/internal/api"
	"compliscan/scan-engine/internal/config"
	"compliscan/scan-engine/internal/engine"
	"compliscan/scan-engine/internal/logging"
	"compliscan/scan-engine/internal/rules"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scan engine HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Debug)
		if err != nil {
			return err
		}
		defer log.Sync()

		registry, err := rules.BuiltinWithPacks(cfg.RulePackDir)
		if err != nil {
			return err
		}
		eng := engine.New(registry, engine.Config{
			RuleBudget: cfg.Engine.RuleBudget(),
			ScanBudget: cfg.Engine.ScanBudget(),
			Workers:    cfg.Engine.Workers,
		}, log)
		server := api.NewServer(eng, cfg.MaxCodeBytes, log)

		srv := &http.Server{
			Addr:         cfg.Listen,
			Handler:      server.Routes(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
		log.Infow("scan engine listening", "addr", cfg.Listen, "rules", registry.Len())
		return srv.ListenAndServe()
	},
}
