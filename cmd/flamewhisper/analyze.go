package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"brigid/internal/app"
	"brigid/internal/config"
	"brigid/pkg/flamewhisper"
)

type analyzed struct {
	path     string
	state    app.State
	analysis flamewhisper.Analysis
}

func runAnalyze(ctx context.Context, a *app.App, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	save := fs.Bool("save", false, "save each result to snapshot memory")
	export := fs.Bool("export", false, "export each result as PNG to the export dir")
	asHTML := fs.Bool("html", false, "print the report as HTML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("analyze: no images given")
	}

	// Analyses are independent; only memory writes below are ordered.
	results := make([]analyzed, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := readImageSrc(path)
			if err != nil {
				return err
			}
			state, analysis, err := a.Analyze(gctx, app.State{}, src)
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", path, err)
			}
			results[i] = analyzed{path: path, state: state, analysis: analysis}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(out, "=== %s (%dx%d) ===\n", r.path, r.analysis.Width, r.analysis.Height)
		if *asHTML {
			fmt.Fprintln(out, r.analysis.Report.HTML())
		} else {
			fmt.Fprintln(out, r.analysis.Report.Text())
		}

		if *save && a.SaveCurrent(r.state) {
			fmt.Fprintln(out, "Saved to memory.")
		}
		if *export {
			exp, ok, err := a.ExportCurrent(r.state)
			if err != nil {
				return fmt.Errorf("exporting %s: %w", r.path, err)
			}
			if ok {
				path, err := writeExport(cfg.ExportDir, exp)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported: %s\n", path)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

// readImageSrc loads an image file as a data URI, the form snapshots keep.
func readImageSrc(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	return flamewhisper.EncodeDataURI(data, http.DetectContentType(data)), nil
}
