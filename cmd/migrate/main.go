package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/verdantia/storefront/internal/infrastructure/config"
	"github.com/verdantia/storefront/internal/infrastructure/logger"
	"github.com/verdantia/storefront/internal/infrastructure/migration"
)

const usage = `Usage: migrate [-path DIR] COMMAND

Commands:
  up            apply all pending migrations
  down          roll back all migrations
  steps N       apply N migrations (negative N rolls back)
  version       print current schema version
  force N       set schema version without running migrations
  create NAME   create an empty up/down migration pair
`

func main() {
	path := flag.String("path", "migrations", "migrations directory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// create works without a database connection
	if command == "create" {
		if flag.NArg() < 2 {
			flag.Usage()
			os.Exit(2)
		}
		pair, err := migration.Create(*path, flag.Arg(1))
		if err != nil {
			log.Error("Failed to create migration", zap.Error(err))
			os.Exit(1)
		}
		log.Info("Created migration",
			zap.String("up", pair.UpPath),
			zap.String("down", pair.DownPath),
		)
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("Failed to reach database",
			zap.String("host", cfg.Database.Host),
			zap.Error(err),
		)
		os.Exit(1)
	}

	migrator, err := migration.New(db, *path, log)
	if err != nil {
		log.Error("Failed to initialize migrator", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Error("Error closing migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		n, parseErr := argInt(1)
		if parseErr != nil {
			log.Error("steps requires an integer argument", zap.Error(parseErr))
			os.Exit(2)
		}
		err = migrator.Steps(n)
	case "version":
		version, dirty, verErr := migrator.Version()
		if verErr != nil {
			err = verErr
			break
		}
		log.Info("Schema version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
	case "force":
		n, parseErr := argInt(1)
		if parseErr != nil {
			log.Error("force requires an integer argument", zap.Error(parseErr))
			os.Exit(2)
		}
		err = migrator.Force(n)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error("Migration command failed",
			zap.String("command", command),
			zap.Error(err),
		)
		os.Exit(1)
	}
}

func argInt(i int) (int, error) {
	if flag.NArg() <= i {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.Atoi(flag.Arg(i))
}
