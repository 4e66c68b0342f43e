package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateloan/lms-auth/pkg/config"
	"github.com/stateloan/lms-auth/pkg/db"
	"github.com/stateloan/lms-auth/pkg/password"
	"github.com/stateloan/lms-auth/pkg/seed"
	"github.com/stateloan/lms-auth/pkg/server"
	"github.com/stateloan/lms-auth/pkg/server/endpoints"
	gormstore "github.com/stateloan/lms-auth/pkg/server/store/gorm"
	"github.com/stateloan/lms-auth/pkg/token"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the auth service API server",
	Long: `Run the auth service API server.

To run the server requires the environment variables LMS_JWT_SECRET and DATABASE_URL.

By default, database migrations and the initial data seed are run on startup.
Use --no-migrate and --no-seed to skip them.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		if bindAddress, _ := cmd.Flags().GetString("bind-address"); bindAddress != "" {
			cfg.BindAddress = bindAddress
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			p, err := strconv.Atoi(port)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid port %q\n", port)
				os.Exit(1)
			}
			cfg.Port = p
		}

		// Validate required configuration first (fail fast)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
		if cfg.DatabaseURL == "" && os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to create logger: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()

		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		hasher := password.NewBcryptHasher(0)
		stores := server.Stores{
			Permissions: gormstore.NewPermissionsStore(database),
			Roles:       gormstore.NewRolesStore(database),
			Users:       gormstore.NewUsersStore(database, hasher),
			Health:      gormstore.NewHealthStore(database),
		}

		// Seed initial data unless --no-seed is set
		noSeed, _ := cmd.Flags().GetBool("no-seed")
		if !noSeed {
			catalog, err := loadSeedCatalog(cfg.SeedFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load seed catalog: %v\n", err)
				os.Exit(1)
			}
			seeder := seed.NewSeeder(stores.Permissions, stores.Roles, stores.Users, logger)
			if err := seeder.Run(catalog); err != nil {
				fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
				os.Exit(1)
			}
		}

		issuer := token.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL())
		s := server.NewServer(cfg, database, logger, stores, issuer)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s...\n", cfg.Addr())
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", "", "server listen port (overrides LMS_PORT)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides LMS_BIND_ADDRESS)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("no-seed", false, "skip seeding initial data on start")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadSeedCatalog(path string) (*seed.Catalog, error) {
	if path == "" {
		return seed.DefaultCatalog(), nil
	}
	return seed.LoadCatalog(path)
}
