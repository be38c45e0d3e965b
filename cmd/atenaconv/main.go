package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cardbridge/atena/internal/dict"
	"github.com/cardbridge/atena/internal/kana"
	"github.com/cardbridge/atena/internal/services"
)

const version = "1.2.0"

func main() {
	var (
		inPath  = flag.String("in", "-", "input Eight export CSV/TSV, - for stdin")
		outPath = flag.String("out", "-", "output address-label CSV, - for stdout")
		dictDir = flag.String("dict", "data", "dictionary directory")
		noKana  = flag.Bool("no-kana", false, "disable heuristic kana derivation")
		verbose = flag.Bool("v", false, "log per-row errors at warn level")
	)
	flag.Parse()

	logger := newLogger(*verbose)
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("atenaconv", zap.String("version", version))

	if err := run(*inPath, *outPath, *dictDir, *noKana, logger); err != nil {
		logger.Error("conversion failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(inPath, outPath, dictDir string, noKana bool, logger *zap.Logger) error {
	store, err := dict.NewStore(dict.Paths{Dir: dictDir}, logger)
	if err != nil {
		return err
	}

	var converter kana.HeuristicConverter = kana.DisabledConverter{}
	if !noKana {
		kagome, err := kana.NewKagomeConverter()
		if err != nil {
			return err
		}
		converter = kagome
	}

	svc, err := services.NewConvertService(services.ConvertServiceDeps{
		Dictionaries: store,
		Converter:    converter,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(inPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(outPath)
	if err != nil {
		return err
	}

	report, err := svc.ConvertCSV(context.Background(), in, out)
	if err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	for _, re := range report.Errors {
		logger.Warn("row error",
			zap.Int("row", re.Row),
			zap.String("column", re.Column),
			zap.String("message", re.Message))
	}
	logger.Info("conversion complete",
		zap.String("id", report.ID),
		zap.Int("rows", len(report.Rows)),
		zap.Int("converted", report.Converted),
		zap.Int("reviewed", report.Reviewed),
		zap.Int("errors", len(report.Errors)))
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
