package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"payequity/internal/batch"
	"payequity/internal/compliance"
	"payequity/internal/compliance/render"
	"payequity/internal/compliance/service"
	"payequity/internal/platform/logger"
	"payequity/pkg/platform/strutil"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze job class datasets for compliance",
	Long:  "Loads each dataset (.csv, .json, .yaml, .html), analyzes it, and prints one report per file in the order given.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeFormat   string
	analyzeProgress bool
	analyzeStrict   bool
	analyzeWorkers  int
	analyzeLogLevel string
	analyzeNoColor  bool
)

// errNotCompliant makes --strict runs exit non-zero.
var errNotCompliant = errors.New("one or more datasets are not in compliance")

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "table", "Output format: table or json")
	analyzeCmd.Flags().BoolVar(&analyzeProgress, "progress", false, "Show a progress bar on stderr")
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false, "Exit non-zero unless every dataset is in compliance")
	analyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 0, "Datasets analyzed concurrently (default GOMAXPROCS)")
	analyzeCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false, "Disable colored output")
	analyzeCmd.Flags().StringVar(&analyzeLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFormat != "table" && analyzeFormat != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", analyzeFormat)
	}

	paths := strutil.DedupeAndTrim(args)
	log := logger.NewWithWriter(cmd.ErrOrStderr(), analyzeLogLevel, "text")
	svc := service.New(service.WithLogger(log))

	opts := batch.Options{Workers: analyzeWorkers}
	if analyzeProgress {
		bar := pb.New(len(paths))
		bar.SetWriter(cmd.ErrOrStderr())
		bar.Start()
		defer bar.Finish()
		opts.OnDone = func(batch.Result) { bar.Increment() }
	}

	results, err := batch.Run(cmd.Context(), svc, paths, opts)
	if err != nil {
		return err
	}

	if analyzeNoColor {
		pterm.DisableColor()
	}
	return writeResults(cmd.OutOrStdout(), results, analyzeFormat, analyzeStrict)
}

type jsonResult struct {
	File    string              `json:"file"`
	Name    string              `json:"name,omitempty"`
	Outcome compliance.Outcome  `json:"outcome,omitempty"`
	Verdict *compliance.Verdict `json:"verdict,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func writeResults(w io.Writer, results []batch.Result, format string, strict bool) error {
	var failed, notCompliant int
	for _, res := range results {
		if res.Err != nil {
			failed++
		} else if !res.Verdict.IsCompliant {
			notCompliant++
		}
	}

	if format == "json" {
		out := make([]jsonResult, 0, len(results))
		for _, res := range results {
			jr := jsonResult{File: res.Path}
			if res.Err != nil {
				jr.Error = res.Err.Error()
			} else {
				jr.Name = res.Dataset.Name
				jr.Outcome = res.Verdict.Outcome()
				jr.Verdict = res.Verdict
			}
			out = append(out, jr)
		}
		if err := render.JSON(w, out); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(w, "%s\n%s\n\n", res.Path, pterm.Red("ERROR: "+res.Err.Error()))
				continue
			}
			if err := render.Text(w, title(res), *res.Verdict); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d datasets could not be analyzed", failed, len(results))
	}
	if strict && notCompliant > 0 {
		return errNotCompliant
	}
	return nil
}

func title(res batch.Result) string {
	if res.Dataset.Jurisdiction != "" {
		return fmt.Sprintf("%s (%s)", res.Dataset.Jurisdiction, res.Path)
	}
	return res.Path
}
