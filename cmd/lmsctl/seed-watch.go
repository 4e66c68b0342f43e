package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateloan/lms-auth/pkg/db"
	"github.com/stateloan/lms-auth/pkg/password"
	"github.com/stateloan/lms-auth/pkg/seed"
	gormstore "github.com/stateloan/lms-auth/pkg/server/store/gorm"
)

// seedWatchCmd represents the seed watch command
var seedWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a seed catalog and re-seed when it changes",
	Long: `Watch a YAML seed catalog and apply it whenever the file changes.

Seeding is idempotent, so only additions in the catalog take effect.
The file must be visible to the process running "lmsctl seed watch".

Example:
  lmsctl seed watch /run/lms/seed.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		if err := watchSeed(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch seed catalog: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	seedCmd.AddCommand(seedWatchCmd)
}

func watchSeed(filename string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Getenv("LMS_LOG_LEVEL"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	hasher := password.NewBcryptHasher(0)
	seeder := seed.NewSeeder(
		gormstore.NewPermissionsStore(database),
		gormstore.NewRolesStore(database),
		gormstore.NewUsersStore(database, hasher),
		logger,
	)

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for seed catalog changes\n", filename)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] Seed catalog modified, re-seeding...\n", time.Now().Format(time.RFC3339))

				catalog, err := seed.LoadCatalog(filename)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading seed catalog: %v\n", err)
					continue
				}

				if err := seeder.Run(catalog); err != nil {
					logger.Error("Seeding failed", zap.Error(err))
				} else {
					fmt.Printf("Seed catalog applied from %s\n", filename)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case sig := <-sigChan:
			fmt.Printf("\nReceived signal %v, shutting down\n", sig)
			return nil
		}
	}
}
