package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/config"
	"github.com/umkmhub/marketplace/internal/server/repositories/repomanager"
	"github.com/umkmhub/marketplace/internal/server/services"
	"gopkg.in/yaml.v3"
)

const secretBytes = 32

// storeOpener connects to the configured backend. Tests swap it for an
// in-memory manager.
type storeOpener func(ctx context.Context) (repomanager.RepositoryManager, error)

func openStore(ctx context.Context) (repomanager.RepositoryManager, error) {
	return repomanager.New(ctx, config.LoadEnvConfig())
}

func newRootCmd(open storeOpener) *cobra.Command {
	root := &cobra.Command{
		Use:          "marketctl",
		Short:        "Maintenance tasks for the marketplace server",
		SilenceUsage: true,
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load fixture data into the store",
	}
	seed.AddCommand(&cobra.Command{
		Use:   "trainings <file.yaml>",
		Short: "Create the training announcements listed in a YAML file",
		Long: `Create training announcements from a YAML list. Each item needs
title, description, schedule, location and organizer; markup is stripped
the same way the API does it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedTrainings(cmd, open, args[0])
		},
	})

	root.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply schema migrations and create indexes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd, open)
			},
		},
		&cobra.Command{
			Use:   "secret",
			Short: "Print a random value suitable for JWT_SECRET",
			Args:  cobra.NoArgs,
			RunE:  runSecret,
		},
		seed,
	)
	return root
}

func runMigrate(cmd *cobra.Command, open storeOpener) error {
	ctx := cmd.Context()

	m, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer m.Close(ctx)

	if err := m.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

func runSecret(cmd *cobra.Command, _ []string) error {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
	return nil
}

type trainingSeed struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Schedule    string `yaml:"schedule"`
	Location    string `yaml:"location"`
	Organizer   string `yaml:"organizer"`
}

func readTrainingSeeds(path string) ([]trainingSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []trainingSeed
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

// runSeedTrainings stops at the first invalid item; items before it stay
// created.
func runSeedTrainings(cmd *cobra.Command, open storeOpener, path string) error {
	ctx := cmd.Context()

	items, err := readTrainingSeeds(path)
	if err != nil {
		return err
	}

	m, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer m.Close(ctx)

	svc := services.NewTrainingService(m, logging.NewNop())
	for i, it := range items {
		t, err := svc.Create(ctx, services.TrainingInput{
			Title:       it.Title,
			Description: it.Description,
			Schedule:    it.Schedule,
			Location:    it.Location,
			Organizer:   it.Organizer,
		})
		if err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s %q\n", t.ID, t.Title)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d trainings created\n", len(items))
	return nil
}
