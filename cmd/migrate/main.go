package main

import (
	"log"
	"os"

	"textkeeper/config"
	"textkeeper/pkg/database"
	"textkeeper/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg       *config.Config
	appLogger *logger.Logger
	db        *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:               "migrate",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "textkeeper database CLI",
	Long:              `Manage the SQL tables used by the local identity provider and the postgres/sqlite document stores`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()
		appLogger = logger.New(cfg.LogMode)

		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			log.Printf("failed to connect: %v", err)
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if appLogger != nil {
			appLogger.Sync()
		}
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Migrate(db); err != nil {
			return err
		}
		appLogger.Infof("migrations applied on %s", cfg.DatabaseDriver())
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection status and row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.HealthCheck(db); err != nil {
			return err
		}
		appLogger.Infof("database connection OK (%s)", cfg.DatabaseDriver())

		for _, model := range database.Models {
			if !db.Migrator().HasTable(model) {
				appLogger.Warnf("table for %T does not exist", model)
				continue
			}
			var count int64
			if err := db.Model(model).Count(&count).Error; err != nil {
				appLogger.Warnf("count %T: %v", model, err)
				continue
			}
			appLogger.Infof("table for %T exists (%d rows)", model, count)
		}
		return nil
	},
}

var truncateCmd = &cobra.Command{
	Use:   "truncate",
	Short: "Delete every row from every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Truncate(db); err != nil {
			return err
		}
		appLogger.Infof("all tables truncated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(truncateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
