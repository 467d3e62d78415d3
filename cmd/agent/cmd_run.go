package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goaplanner/agent/config"
	"github.com/goaplanner/agent/execution"
	"github.com/goaplanner/agent/gameclient"
	"github.com/goaplanner/agent/knowledge"
	"github.com/goaplanner/agent/learning"
	"github.com/goaplanner/agent/worldstate"
)

var (
	runCharacter string
	runGoal      string
	runServerURL string
	runToken     string
	runRedisURL  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Execution Manager loop for one character",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRun(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&runCharacter, "character", "", "character name (required)")
	runCmd.Flags().StringVar(&runGoal, "goal", "", "goal template name from goals.yaml (required)")
	runCmd.Flags().StringVar(&runServerURL, "server-url", os.Getenv("GOAP_SERVER_URL"), "game server base URL")
	runCmd.Flags().StringVar(&runToken, "token", os.Getenv("GOAP_TOKEN"), "game server bearer token")
	runCmd.Flags().StringVar(&runRedisURL, "redis-url", os.Getenv("GOAP_REDIS_URL"), "redis URL for the knowledge base (in-memory if unset)")
	_ = runCmd.MarkFlagRequired("character")
	_ = runCmd.MarkFlagRequired("goal")
}

func doRun(ctx context.Context) error {
	clearStopFlag(runCharacter)

	actionsCfg, err := config.LoadActions(filepath.Join(configDir, "actions.yaml"))
	if err != nil {
		return fmt.Errorf("loading actions: %w", err)
	}
	defaultsCfg, err := config.LoadStateDefaults(filepath.Join(configDir, "state_defaults.yaml"))
	if err != nil {
		return fmt.Errorf("loading state defaults: %w", err)
	}
	goalsCfg, err := config.LoadGoalTemplates(filepath.Join(configDir, "goals.yaml"))
	if err != nil {
		return fmt.Errorf("loading goal templates: %w", err)
	}

	cat, err := config.BuildCatalog(actionsCfg)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	defaults, err := config.BuildDefaults(defaultsCfg)
	if err != nil {
		return fmt.Errorf("building state defaults: %w", err)
	}
	wantedGoal, err := config.BuildGoal(goalsCfg, runGoal)
	if err != nil {
		return fmt.Errorf("building goal %q: %w", runGoal, err)
	}

	var backend knowledge.Backend
	if runRedisURL != "" {
		backend, err = knowledge.NewRedisBackend(ctx, runRedisURL, "goap")
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
	} else {
		backend = knowledge.NewInMemoryBackend()
	}
	store := knowledge.New(backend, logger)

	client := gameclient.NewHTTPClient(runServerURL, runToken)
	learner := learning.New(store, logger)
	observer := execution.NewCachingObserver(client, store, worldstate.Defaults(defaults), nil, cat.Snapshot())
	executor := execution.NewGameExecutor(client)

	manager := execution.New(execution.Config{
		Character: runCharacter,
		Executor:  executor,
		Observer:  observer,
		Catalog:   cat,
		Defaults:  worldstate.Defaults(defaults),
		Store:     store,
		Learner:   learner,
		Logger:    logger,
	})
	manager.SetGoal(wantedGoal)
	observer.SetPlanningContext(worldstate.MinimalGoal(wantedGoal), cat.Snapshot())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	manager.Start(runCtx)
	defer clearStopFlag(runCharacter)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			logger.Info("signal received, stopping", map[string]interface{}{"character": runCharacter})
			manager.Stop()
			cancel()
			_ = writeStatusFile(runCharacter, manager.GetStatus())
			return nil

		case <-ticker.C:
			report := manager.GetStatus()
			if err := writeStatusFile(runCharacter, report); err != nil {
				logger.Warn("failed to write status file", map[string]interface{}{"error": err.Error()})
			}
			if report.Status == execution.StatusDoneFail {
				cancel()
				return fmt.Errorf("execution manager stopped: %s", report.LastError)
			}
			if stopRequested(runCharacter) {
				manager.Stop()
				cancel()
				_ = writeStatusFile(runCharacter, manager.GetStatus())
				return nil
			}
		}
	}
}
