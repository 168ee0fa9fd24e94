package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schedtrack/internal/app"
	"schedtrack/internal/config"
	appLog "schedtrack/internal/log"
	"schedtrack/internal/notify"
	"schedtrack/internal/store"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	dbPath     string
	exportPath string
	importPath string
}

func main() {
	appLog.Info("schedtrack starting", "version", "0.1.0")

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	// CLI -db overrides the config file path if provided.
	if flags.dbPath != "" {
		conf.DBPath = flags.dbPath
	}

	appLog.Info("effective config",
		"db_path", conf.DBPath,
		"rollover_check", conf.RolloverCheck,
		"default_notify_minutes", conf.DefaultNotifyMinutes,
		"log_level", conf.LogLevel,
	)

	st, err := store.Open(conf.DBPath)
	if err != nil {
		appLog.Error("failed to open store", err, "db_path", conf.DBPath)
		os.Exit(1)
	}

	armer := notify.NewArmer(notify.LogDispatcher{}, time.Now)
	// The log dispatcher needs no user consent prompt.
	armer.SetPermission(notify.PermissionGranted)

	a := app.New(conf, st, armer, time.Now)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Load(ctx); err != nil {
		appLog.Error("failed to load state", err)
		os.Exit(1)
	}

	// One-shot modes exit without starting the watcher.
	if flags.exportPath != "" {
		runExport(a, flags.exportPath)
		return
	}
	if flags.importPath != "" {
		runImport(ctx, a, flags.importPath)
		return
	}

	if err := a.StartRollover(nil); err != nil {
		appLog.Error("failed to start rollover watcher", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	<-ctx.Done()

	a.Stop()
	appLog.Info("schedtrack exiting")
}

func runExport(a *app.App, path string) {
	f, err := os.Create(path)
	if err != nil {
		appLog.Error("failed to create export file", err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	if err := a.ExportICS(f); err != nil {
		appLog.Error("export failed", err, "path", path)
		os.Exit(1)
	}
	appLog.Info("export finished", "path", path)
}

func runImport(ctx context.Context, a *app.App, path string) {
	f, err := os.Open(path)
	if err != nil {
		appLog.Error("failed to open import file", err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	added, err := a.ImportICS(ctx, f)
	if err != nil {
		appLog.Error("import failed", err, "path", path)
		os.Exit(1)
	}
	appLog.Info("import finished", "path", path, "added", added)
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "schedtrack.yaml", "Path to config file")
	flag.StringVar(&cfg.dbPath, "db", "", "Sqlite database path (overrides config if set)")
	flag.StringVar(&cfg.exportPath, "export", "", "Export schedules to an ICS file and exit")
	flag.StringVar(&cfg.importPath, "import", "", "Import schedules from an ICS file and exit")

	flag.Parse()

	return cfg
}
