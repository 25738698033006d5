// Command uniqueequip prints unique equipment stats for units.
//
// Usage:
//
//	uniqueequip [-config path] [-data file.yaml] [-level n] [unitID...]
//	uniqueequip -import file.yaml          # seed the database from a YAML master file
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"math"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/udisondev/redive/internal/config"
	"github.com/udisondev/redive/internal/data"
	"github.com/udisondev/redive/internal/db"
	"github.com/udisondev/redive/internal/model"
	"github.com/udisondev/redive/internal/roster"
)

const ConfigPath = "config/uniqueequip.yaml"

type options struct {
	configPath string
	dataFile   string
	importFile string
	level      int
	units      []string
}

// masterData is a roster.Source that also knows the level cap and its units.
type masterData interface {
	roster.Source
	MaxUniqueEquipmentLevel(ctx context.Context) (int32, error)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := parseFlags()
	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	defaultConfig := ConfigPath
	if p := os.Getenv("REDIVE_CONFIG"); p != "" {
		defaultConfig = p
	}

	var o options
	flag.StringVar(&o.configPath, "config", defaultConfig, "path to YAML config")
	flag.StringVar(&o.dataFile, "data", "", "YAML master data file (overrides config data_file)")
	flag.StringVar(&o.importFile, "import", "", "import YAML master data into the database and exit")
	flag.IntVar(&o.level, "level", 0, "enhance level to print (0 = max)")
	flag.Parse()
	o.units = flag.Args()
	return o
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.dataFile != "" {
		cfg.DataFile = opts.dataFile
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	if opts.importFile != "" {
		return importTable(ctx, cfg, opts.importFile)
	}

	level, err := parseEnhanceLevel(opts.level)
	if err != nil {
		return err
	}

	src, allUnits, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	unitIDs, err := parseUnitIDs(opts.units)
	if err != nil {
		return err
	}
	if len(unitIDs) == 0 {
		if unitIDs, err = allUnits(ctx); err != nil {
			return err
		}
	}

	maxLevel, err := src.MaxUniqueEquipmentLevel(ctx)
	if err != nil {
		return err
	}
	if maxLevel == 0 {
		slog.Warn("no unique equipment level cap in data, showing base stats")
	}

	charas := make([]*model.Chara, len(unitIDs))
	for i, id := range unitIDs {
		charas[i] = model.NewChara(id, "", maxLevel)
	}

	n, err := roster.NewLoader(src, cfg.Workers).Attach(ctx, charas)
	if err != nil {
		return fmt.Errorf("attaching unique equipment: %w", err)
	}
	slog.Info("unique equipment attached", "units", len(charas), "attached", n, "max_level", maxLevel)

	return printCharas(os.Stdout, charas, level)
}

func openSource(ctx context.Context, cfg config.Config) (masterData, func(context.Context) ([]int32, error), func(), error) {
	if cfg.DataFile != "" {
		table, err := data.LoadTable(cfg.DataFile)
		if err != nil {
			return nil, nil, nil, err
		}
		all := func(context.Context) ([]int32, error) { return table.UnitIDs(), nil }
		return table, all, func() {}, nil
	}

	database, err := connect(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	repo := database.UniqueEquipment()
	return repo, repo.UnitIDs, database.Close, nil
}

func connect(ctx context.Context, cfg config.Config) (*db.DB, error) {
	dsn := cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)
	return database, nil
}

func importTable(ctx context.Context, cfg config.Config, path string) error {
	table, err := data.LoadTable(path)
	if err != nil {
		return err
	}

	database, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := database.UniqueEquipment().Import(ctx, table)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	slog.Info("unique equipment imported", "path", path, "units", n)
	return nil
}

func parseUnitIDs(args []string) ([]int32, error) {
	ids := make([]int32, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 32)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid unit id %q", a)
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}

// parseEnhanceLevel validates the -level flag; 0 means max level.
func parseEnhanceLevel(level int) (int32, error) {
	if level < 0 || level > math.MaxInt32 {
		return 0, fmt.Errorf("invalid enhance level %d", level)
	}
	return int32(level), nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
