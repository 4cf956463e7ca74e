package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	mem "pet-social/internal/adapters/storage/memory"
	pg "pet-social/internal/adapters/storage/postgres"
	"pet-social/internal/config"
	"pet-social/internal/ports/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea o actualiza el esquema en DB_DSN",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DBDSN == "" {
				return errors.New("migrate: DB_DSN is required")
			}
			store, err := openStore(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer store.Close()
			cmd.Println("schema up to date")
			return nil
		},
	}
}

// openStore: DB_DSN vacío => in-memory.
func openStore(ctx context.Context, cfg config.Config, migrate bool) (storage.Store, error) {
	if cfg.DBDSN == "" {
		return mem.New(), nil
	}
	sqlDB, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	store, err := pg.NewStore(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if migrate {
		if err := store.AutoMigrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}
