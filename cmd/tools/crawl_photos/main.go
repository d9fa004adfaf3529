package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/busan-tour-bot-go/internal/service/gallery"
)

var (
	startPage = flag.Int("start", 1, "First gallery page")
	endPage   = flag.Int("end", 5, "Last gallery page")
	outDir    = flag.String("out", "internal/domain/data/gallery", "Output directory")
	delay     = flag.Duration("delay", time.Second, "Pause between pages")
	dryRun    = flag.Bool("dry-run", false, "Crawl and report without writing files")
)

func main() {
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	crawler := gallery.NewCrawler(logger, gallery.WithDelay(*delay))
	photos, err := crawler.Crawl(ctx, *startPage, *endPage)
	if err != nil && len(photos) == 0 {
		logger.Fatal("gallery crawl failed", zap.Error(err))
	}
	if err != nil {
		logger.Warn("gallery crawl ended early, keeping partial results", zap.Error(err))
	}

	byAttraction := gallery.Organize(photos)
	names := make([]string, 0, len(byAttraction))
	for name := range byAttraction {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Info("Attraction photos", zap.String("attraction", name), zap.Int("count", len(byAttraction[name])))
	}

	if *dryRun {
		logger.Info("Dry run, nothing written", zap.Int("photos", len(photos)))
		return
	}

	if err := writeJSON(filepath.Join(*outDir, "photos.json"), photos); err != nil {
		logger.Fatal("failed to write photo list", zap.Error(err))
	}
	if err := writeJSON(filepath.Join(*outDir, "photos_by_attraction.json"), byAttraction); err != nil {
		logger.Fatal("failed to write organized photos", zap.Error(err))
	}

	logger.Info("Gallery crawl saved",
		zap.Int("photos", len(photos)),
		zap.Int("attractions", len(byAttraction)),
		zap.String("output", *outDir),
	)
}

// writeJSON writes through a temp file so a failed run never leaves a
// truncated output behind.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}
