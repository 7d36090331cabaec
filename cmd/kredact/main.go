package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hanmaum/kredact/internal/config"
	"github.com/hanmaum/kredact/internal/logger"
	"github.com/hanmaum/kredact/internal/output"
	"github.com/hanmaum/kredact/internal/pii"
	"go.uber.org/zap"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// maxWorkers bounds concurrent file processing; each Redact call is
// independent, so files only contend for CPU.
const maxWorkers = 4

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		format      = flag.String("format", "", "Report format: text, json, or yaml (overrides config)")
		outPath     = flag.String("out", "", "Write masked text to this file (single input only)")
		statsOnly   = flag.Bool("stats-only", false, "Print only the detection report, not the masked text")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("kredact %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *format != "" {
		cfg.Output.Format = *format
	}

	loggerConfig := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if cfg.Logging.File.Enabled {
		loggerConfig.File = &logger.FileConfig{
			Enabled: true,
			Path:    cfg.Logging.File.Path,
		}
	}
	log, err := logger.New(loggerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts, err := cfg.EngineOptions()
	if err != nil {
		log.Fatal("Invalid privacy options", zap.Error(err))
	}
	engine := pii.New(opts, log)

	formatter, err := output.New(cfg.Output.Format)
	if err != nil {
		log.Fatal("Invalid output format", zap.Error(err))
	}

	inputs := flag.Args()
	if len(inputs) > 1 && *outPath != "" {
		fmt.Fprintln(os.Stderr, "-out is only valid with a single input file")
		os.Exit(1)
	}

	var summaries []output.Summary
	if len(inputs) == 0 {
		summary, err := processStdin(engine, cfg, *statsOnly)
		if err != nil {
			log.Fatal("Failed to process stdin", zap.Error(err))
		}
		log.LogRedaction(summary.Source, summary.Report.TotalMasked, summary.Report.DurationMicros)
		summaries = append(summaries, summary)
	} else {
		summaries = processFiles(engine, cfg, log, inputs, *outPath, *statsOnly)
	}

	report, err := formatter.Format(summaries)
	if err != nil {
		log.Fatal("Failed to format report", zap.Error(err))
	}
	// With -stats-only the report is the output itself; otherwise stdout
	// carries masked text and the report goes to stderr alongside it.
	if *statsOnly {
		fmt.Fprint(os.Stdout, report)
	} else {
		fmt.Fprint(os.Stderr, report)
	}
}

// processStdin redacts stdin and writes the masked text to stdout.
func processStdin(engine *pii.Engine, cfg *config.Config, statsOnly bool) (output.Summary, error) {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return output.Summary{}, fmt.Errorf("read stdin: %w", err)
	}

	result, err := engine.Redact(string(raw))
	if err != nil {
		return output.Summary{}, err
	}
	if !statsOnly {
		fmt.Print(result.MaskedText)
	}
	return summarize("stdin", cfg, result), nil
}

// processFiles redacts each input file with a bounded worker pool, writing
// masked output next to the source (or to outPath for a single input).
func processFiles(engine *pii.Engine, cfg *config.Config, log *logger.Logger, inputs []string, outPath string, statsOnly bool) []output.Summary {
	summaries := make([]output.Summary, len(inputs))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, path := range inputs {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			summary, err := processFile(engine, cfg, path, outPath, statsOnly)
			if err != nil {
				log.Error("Failed to process file", zap.String("path", path), zap.Error(err))
				summary = output.Summary{Source: path}
			} else {
				log.LogRedaction(path, summary.Report.TotalMasked, summary.Report.DurationMicros)
			}
			summaries[i] = summary
		}(i, path)
	}
	wg.Wait()
	return summaries
}

func processFile(engine *pii.Engine, cfg *config.Config, path, outPath string, statsOnly bool) (output.Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return output.Summary{}, fmt.Errorf("read %s: %w", path, err)
	}

	result, err := engine.Redact(string(raw))
	if err != nil {
		return output.Summary{}, fmt.Errorf("redact %s: %w", path, err)
	}

	if !statsOnly {
		dest := outPath
		if dest == "" {
			dest = path + ".masked"
		}
		if err := os.WriteFile(dest, []byte(result.MaskedText), 0o600); err != nil {
			return output.Summary{}, fmt.Errorf("write %s: %w", dest, err)
		}
	}
	return summarize(path, cfg, result), nil
}

func summarize(source string, cfg *config.Config, result *pii.RedactionResult) output.Summary {
	summary := output.Summary{
		Source: source,
		Report: result.Report,
	}
	if cfg.Privacy.Validate {
		v := pii.Validate(result.Original, result.MaskedText)
		summary.Validation = &v
	}
	return summary
}
