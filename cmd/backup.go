/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/arjohnson15/workoutapp/config"
	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/internal/storage"
)

var (
	backupOut   string
	restoreFile string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot every collection into a tar.gz archive",
	Long: `Snapshot every collection into a tar.gz archive. The archive is uploaded
to object storage under backups/, or written to --out when given.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		docs, err := docstore.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open document store: %w", err)
		}
		defer func() { err = multierr.Append(err, docs.Close()) }()

		if backupOut != "" {
			archive, err := services.NewBackupService(docs, nil).Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(backupOut, archive, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", backupOut, err)
			}
			log.Infof("backup written to %s", backupOut)
			return nil
		}

		objects, err := openObjectStorage(cmd.Context(), cfg.Storage)
		if err != nil {
			return err
		}
		key, err := services.NewBackupService(docs, objects).Backup(cmd.Context())
		if err != nil {
			return err
		}
		log.Infof("backup uploaded to %s/%s", objects.Bucket(), key)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [key]",
	Short: "Restore collections from a backup archive",
	Long: `Restore collections from a backup archive stored in object storage under
key, or read from --file. Collections missing from the archive are left as is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if (len(args) == 0) == (restoreFile == "") {
			return errors.New("provide either a backup key or --file")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		docs, err := docstore.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open document store: %w", err)
		}
		defer func() { err = multierr.Append(err, docs.Close()) }()

		if restoreFile != "" {
			archive, err := os.ReadFile(restoreFile)
			if err != nil {
				return err
			}
			if err := services.NewBackupService(docs, nil).RestoreArchive(cmd.Context(), archive); err != nil {
				return err
			}
			log.Infof("restored from %s", restoreFile)
			return nil
		}

		objects, err := openObjectStorage(cmd.Context(), cfg.Storage)
		if err != nil {
			return err
		}
		if err := services.NewBackupService(docs, objects).Restore(cmd.Context(), args[0]); err != nil {
			return err
		}
		log.Infof("restored from %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	backupCmd.Flags().StringVar(&backupOut, "out", "", "write the archive to this file instead of object storage")
	restoreCmd.Flags().StringVar(&restoreFile, "file", "", "read the archive from this file")
}

func openObjectStorage(ctx context.Context, cfg config.StorageConfig) (*storage.Storage, error) {
	if cfg.Backend == "" {
		return nil, errors.New("STORAGE_BACKEND is not configured")
	}
	objects, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open object storage: %w", err)
	}
	return objects, nil
}
