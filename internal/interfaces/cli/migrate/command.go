package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servio-inc/servio/internal/infrastructure/config"
	"github.com/servio-inc/servio/internal/infrastructure/database"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/migrations"
	"github.com/servio-inc/servio/internal/shared/logger"
	"gorm.io/gorm"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply the billing schema to the configured database.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newCatalogCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply the full schema",
		Long:  `Create or update all catalog, subscription and commission tables.`,
		RunE:  runUp,
	}
}

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Apply the catalog tables only",
		Long:  `Create or update the plan, module, bundle and promo code tables.`,
		RunE:  runCatalog,
	}
}

func initEnv() (*gorm.DB, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return database.Get(), logger.NewLogger(), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	db, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running migrations", "environment", env)

	if err := migrations.MigrateAll(db); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	db, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running catalog migrations", "environment", env)

	if err := migrations.MigrateCatalogTables(db); err != nil {
		log.Errorw("catalog migration failed", "error", err)
		return fmt.Errorf("catalog migration failed: %w", err)
	}

	log.Infow("catalog migrations completed successfully")
	return nil
}
