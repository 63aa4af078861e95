package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"brigid/internal/app"
	"brigid/internal/config"
	"brigid/internal/logger"
	"brigid/internal/memory"
	"brigid/internal/metrics"
)

const usage = `usage: flamewhisper <command> [flags]

commands:
  analyze [-save] [-export] [-html] <image>...   analyze flame photos
  history                                        list saved snapshots
  delete <index>                                 delete a saved snapshot
  export [-dir d] <index>                        export a saved snapshot as PNG`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%s", usage)
	}

	cfg := config.Load()
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
	}
	logger.Init(level, logger.Output(cfg.LogFile))

	m := metrics.New()
	defer func() {
		if cfg.MetricsFile == "" {
			return
		}
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("main", "writing metrics: %v", err)
		}
	}()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	a := app.New(memory.New(store, m), m)

	switch args[0] {
	case "analyze":
		return runAnalyze(context.Background(), a, cfg, args[1:], out)
	case "history":
		return runHistory(a, out)
	case "delete":
		return runDelete(a, args[1:], out)
	case "export":
		return runExport(a, cfg, args[1:], out)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

// openStore returns the configured snapshot store and a func releasing it.
func openStore(cfg *config.Config) (memory.KV, func(), error) {
	switch cfg.MemoryBackend {
	case config.BackendFile:
		return memory.NewFileStore(cfg.MemoryPath), func() {}, nil
	case config.BackendSQLite:
		path := cfg.MemoryPath
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "memory.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create memory dir: %w", err)
		}
		s, err := memory.OpenSQLite(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening snapshot database: %w", err)
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown memory backend %q", cfg.MemoryBackend)
	}
}

func runHistory(a *app.App, out io.Writer) error {
	saved := a.History()
	if len(saved) == 0 {
		fmt.Fprintln(out, "No saved snapshots.")
		return nil
	}
	for i, s := range saved {
		fmt.Fprintf(out, "[%d] %s  %s\n", i, s.Time.Local().Format(time.DateTime), summaryLine(s.ReportText))
	}
	return nil
}

// summaryLine picks the coverage line of a report, or its first line.
func summaryLine(report string) string {
	lines := strings.Split(report, "\n")
	for _, l := range lines {
		if strings.HasPrefix(l, "Coverage:") {
			return l
		}
	}
	return lines[0]
}

func runDelete(a *app.App, args []string, out io.Writer) error {
	index, err := parseIndex(args)
	if err != nil {
		return err
	}
	before := len(a.History())
	a.DeleteSaved(index)
	if len(a.History()) < before {
		fmt.Fprintf(out, "Deleted snapshot %d.\n", index)
	}
	return nil
}

func runExport(a *app.App, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	dir := fs.String("dir", cfg.ExportDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	index, err := parseIndex(fs.Args())
	if err != nil {
		return err
	}

	exp, ok, err := a.ExportSaved(index)
	if err != nil {
		return fmt.Errorf("exporting snapshot %d: %w", index, err)
	}
	if !ok {
		fmt.Fprintf(out, "No snapshot %d.\n", index)
		return nil
	}
	path, err := writeExport(*dir, exp)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported: %s\n", path)
	return nil
}

func writeExport(dir string, exp app.Export) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	// Exports made within the same second share a name
	path := filepath.Join(dir, exp.Filename)
	base := strings.TrimSuffix(path, ".png")
	for n := 2; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = fmt.Sprintf("%s-%d.png", base, n)
	}
	if err := os.WriteFile(path, exp.PNG, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func parseIndex(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one snapshot index")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	return index, nil
}
