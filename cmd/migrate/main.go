// Command migrate applies the SQL migrations in migrations/ to the database
// given by DATABASE_URL, using the atlas CLI through its Go SDK.
package main

import (
	"context"
	"log/slog"
	"os"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	if err := run(context.Background(), dbURL, dir); err != nil {
		slog.Error("migration failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, dbURL, dir string) error {
	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS(dir)),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := workdir.Close(); err != nil {
			slog.Warn("failed to clean migration workdir", "error", err.Error())
		}
	}()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		return err
	}

	// Plain SQL files carry no atlas.sum, so hash the directory first.
	if err := client.MigrateHash(ctx, &atlasexec.MigrateHashParams{}); err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: dbURL,
	})
	if err != nil {
		return err
	}

	slog.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
	return nil
}
