// Command score scores a raw results workbook once and writes the report
// workbooks without starting the HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/okian/fitscore/internal/adapters/xlsx"
	app "github.com/okian/fitscore/internal/app"
	"github.com/okian/fitscore/internal/config"
	"github.com/okian/fitscore/internal/domain/rules"
	"github.com/okian/fitscore/pkg/logger"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitNoData  = 2
	exitUsage   = 64
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in       = fs.String("in", "", "Raw results workbook (.xlsx)")
		out      = fs.String("out", "", "Output directory (default: output_dir from config)")
		rulesArg = fs.String("rules", "", "YAML band file overriding the built-in table")
		keep     = fs.Bool("keep", false, "Keep earlier report workbooks in the output directory")
		verbose  = fs.Bool("verbose", false, "Enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *in == "" {
		fmt.Fprintln(stderr, "score: -in is required")
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "score: failed to load config:", err)
		return exitFailure
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *rulesArg != "" {
		cfg.RulesFile = *rulesArg
	}
	if *keep {
		cfg.CleanupPrevious = false
	}

	log := logger.New(stderr)
	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		_ = logger.SetLevelString("info")
	}

	opts := []app.Option{
		app.WithLogger(log),
		app.WithOutputDir(cfg.OutputDir),
		app.WithCleanup(cfg.CleanupPrevious),
		app.WithPreviewRows(0),
	}
	if cfg.RulesFile != "" {
		table, err := rules.LoadFile(ctx, cfg.RulesFile)
		if err != nil {
			fmt.Fprintln(stderr, "score:", err)
			return exitFailure
		}
		opts = append(opts, app.WithTable(table))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		fmt.Fprintln(stderr, "score:", err)
		return exitFailure
	}

	grid, err := xlsx.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(stderr, "score:", err)
		return exitFailure
	}

	res, err := svc.Process(ctx, grid)
	switch {
	case errors.Is(err, app.ErrNoValidSegments):
		fmt.Fprintln(stderr, "score: no valid segments; no report written")
		return exitNoData
	case err != nil:
		fmt.Fprintln(stderr, "score:", err)
		return exitFailure
	}

	fmt.Fprintf(stdout, "run %s: %s students, %d segment(s) accepted, %d rejected\n",
		res.Run.ID, humanize.Comma(int64(res.Stats.Students)), res.Stats.SegmentsAccepted, res.Stats.SegmentsRejected)
	for _, name := range append([]string{res.Run.TotalFile}, res.Run.ClassFiles...) {
		path := filepath.Join(res.Run.Dir, name)
		size := "?"
		if fi, err := os.Stat(path); err == nil {
			size = humanize.Bytes(uint64(fi.Size()))
		}
		fmt.Fprintf(stdout, "%s\t%s\n", path, size)
	}
	return exitOK
}
