package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"textenc/internal/analytics"
	"textenc/internal/chunker"
	"textenc/internal/config"
	"textenc/internal/domain"
	"textenc/internal/logging"
	"textenc/internal/normalizer"
	"textenc/internal/report"
	"textenc/internal/service"
	"textenc/internal/tui"
	"textenc/internal/vectorizer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "textenc:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var (
		cfgPath    string
		printOnly  bool
		strategy   string
		split      int
		maxColumns int
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/textenc/config.yaml if not provided)")
	flag.BoolVar(&printOnly, "report", false, "Print a text report instead of starting the explorer")
	flag.StringVar(&strategy, "strategy", "", "Encoding strategy: count, tfidf, onehot or hashing")
	flag.IntVar(&split, "split", -1, "Split each file into documents of N sentences (0 keeps whole files)")
	flag.IntVar(&maxColumns, "columns", report.DefaultMaxColumns, "Matrix columns shown in the report")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: textenc [flags] [file1.txt file2.txt ...]")
		fmt.Fprintln(flag.CommandLine.Output(), "Without files, a built-in sample corpus is encoded.")
		flag.PrintDefaults()
	}
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if strategy != "" {
		s, err := domain.ParseStrategy(strategy)
		if err != nil {
			return err
		}
		cfg.Encoding.Strategy = s
	}
	if split >= 0 {
		cfg.Chunker.SentencesPerChunk = split
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	tsne := &analytics.TSNE{
		Iterations:        cfg.Analytics.TSNE.Iterations,
		LearningRate:      cfg.Analytics.TSNE.LearningRate,
		EarlyExaggeration: cfg.Analytics.TSNE.EarlyExaggeration,
		Seed:              cfg.Analytics.TSNE.Seed,
	}
	resources, err := normalizer.LoadResources()
	if err != nil {
		return err
	}
	svc := service.NewEncodingService(
		normalizer.New(resources),
		vectorizer.DefaultRegistry(),
		analytics.Options{TopFeatures: cfg.Analytics.TopFeatures, Projector: analytics.NewProjector(tsne)},
		log,
	)

	docs := service.SampleDocuments()
	if inputs := flag.Args(); len(inputs) > 0 {
		var ch domain.Chunker
		if cfg.Chunker.SentencesPerChunk > 0 {
			ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
		}
		docs, err = service.LoadDocuments(inputs, ch)
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}
		log.Debug("loaded documents", "files", len(inputs), "documents", len(docs))
	}

	if printOnly {
		res, err := svc.Run(docs, cfg.Preprocessing, cfg.Encoding)
		if err != nil {
			return err
		}
		return report.Render(os.Stdout, res.Encoding, res.Analytics, report.Options{MaxColumns: maxColumns})
	}

	m := tui.New(svc, docs, cfg.Preprocessing, cfg.Encoding)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
