package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

const defaultMigrationsDir = "./db/migrations"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		logger.Error("DATABASE_URL environment variable is not set")
		os.Exit(1)
	}

	dir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if dir == "" {
		dir = defaultMigrationsDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger.Error("failed to resolve migrations dir", slog.String("dir", dir), slog.Any("error", err))
		os.Exit(1)
	}

	sourceURL := "file://" + filepath.ToSlash(abs)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		logger.Error("failed to create migrator", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Error("failed to close migrator", slog.Any("source_error", srcErr), slog.Any("db_error", dbErr))
		}
	}()

	if err := run(m, os.Args[1], os.Args[2:], logger); err != nil {
		logger.Error("migration failed", slog.String("command", os.Args[1]), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, cmd string, args []string, logger *slog.Logger) error {
	switch strings.ToLower(cmd) {
	case "up":
		if err := ignoreNoChange(m.Up(), logger); err != nil {
			return err
		}
		logger.Info("migrations applied")
	case "down":
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid down steps %q", args[0])
			}
			steps = n
		}
		if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
			return err
		}
		logger.Info("migrations rolled back", slog.Int("steps", steps))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("current version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	case "force":
		if len(args) == 0 {
			return errors.New("force requires a version argument")
		}
		version, err := strconv.Atoi(args[0])
		if err != nil || version < 0 {
			return fmt.Errorf("invalid version %q", args[0])
		}
		if err := m.Force(version); err != nil {
			return err
		}
		logger.Info("version forced", slog.Int("version", version))
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func ignoreNoChange(err error, logger *slog.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down [n]|version|force <version>>\n", name)
}
