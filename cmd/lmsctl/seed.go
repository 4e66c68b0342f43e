package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stateloan/lms-auth/pkg/db"
	"github.com/stateloan/lms-auth/pkg/password"
	"github.com/stateloan/lms-auth/pkg/seed"
	gormstore "github.com/stateloan/lms-auth/pkg/server/store/gorm"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Manage the initial data seed",
	Long:  `Manage the initial data seed: the permission catalog, default roles and accounts.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'seed' requires a subcommand (load, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var seedLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Seed the database with initial data",
	Long: `Seed the database with the permission catalog, default roles and accounts.

Seeding is idempotent: records that already exist are left untouched.
Without --file the built-in catalog (or LMS_SEED_FILE) is used.

Example:
  lmsctl seed load
  lmsctl seed load --file seeds/extra.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			file = os.Getenv("LMS_SEED_FILE")
		}

		if err := runSeed(file); err != nil {
			fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedLoadCmd)
	seedLoadCmd.Flags().StringP("file", "f", "", "YAML seed catalog (defaults to the built-in catalog)")
}

func runSeed(file string) error {
	catalog, err := loadSeedCatalog(file)
	if err != nil {
		return err
	}

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
	return seeder.Run(catalog)
}
