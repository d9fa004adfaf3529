package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/database"
	"github.com/kapu/busan-tour-bot-go/internal/service/recommend"
	"go.uber.org/zap"
)

// CLI flags
var (
	dryRun  = flag.Bool("dry-run", false, "Validate the embedded data without touching the database")
	dbHost  = flag.String("db-host", "localhost", "PostgreSQL host")
	dbPort  = flag.Int("db-port", 5432, "PostgreSQL port")
	dbUser  = flag.String("db-user", "busan_user", "PostgreSQL user")
	dbPass  = flag.String("db-pass", "", "PostgreSQL password")
	dbName  = flag.String("db-name", "busan_tour_db", "PostgreSQL database")
	timeout = flag.Duration("timeout", 2*time.Minute, "Overall migration timeout")
	verbose = flag.Bool("verbose", false, "Verbose output")
)

func main() {
	flag.Parse()

	log.Println("==================================")
	log.Println("Recommendations JSON to PostgreSQL")
	log.Println("==================================")

	if *dryRun {
		log.Println("[DRY RUN MODE] No database changes will be made")
	}

	data, err := domain.LoadRecommendationData()
	if err != nil {
		log.Fatalf("Failed to load recommendations.json: %v", err)
	}
	entries := data.Entries()
	log.Printf("✓ Loaded %d recommendation entries", len(entries))

	if err := validate(entries); err != nil {
		log.Fatalf("Data validation failed: %v", err)
	}
	log.Println("✓ Data validation passed")

	if *dryRun {
		log.Println("✓ Dry-run completed successfully")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := migrate(ctx, entries); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✓ Migration completed successfully")
}

func validate(entries []*domain.Recommendation) error {
	seen := make(map[string]bool, len(entries))
	for _, rec := range entries {
		if !rec.Type.IsValid() {
			return fmt.Errorf("invalid mbti type %q", rec.Type)
		}
		key := rec.Type.String() + "/" + rec.Locale
		if seen[key] {
			return fmt.Errorf("duplicate entry %s", key)
		}
		seen[key] = true
		if len(rec.Attractions) == 0 {
			return fmt.Errorf("%s has no attractions", key)
		}
		for i, a := range rec.Attractions {
			if a.Name == "" || a.Category == "" {
				return fmt.Errorf("%s attraction #%d is missing name or category", key, i+1)
			}
		}
	}
	for _, t := range domain.AllMBTITypes() {
		if !seen[t.String()+"/"+domain.DefaultLocale] {
			return fmt.Errorf("%s has no %s entry", t, domain.DefaultLocale)
		}
	}
	return nil
}

func migrate(ctx context.Context, entries []*domain.Recommendation) error {
	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}

	postgres, err := database.NewPostgresService(database.PostgresConfig{
		Host:     *dbHost,
		Port:     *dbPort,
		User:     *dbUser,
		Password: *dbPass,
		Database: *dbName,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer postgres.Close()

	if err := postgres.EnsureSchema(ctx); err != nil {
		return err
	}
	log.Println("✓ Schema ready")

	repo := recommend.NewRepository(postgres, logger)
	for _, rec := range entries {
		if err := repo.Save(ctx, rec); err != nil {
			return fmt.Errorf("save %s/%s: %w", rec.Type, rec.Locale, err)
		}
		if *verbose {
			log.Printf("  → Upserted: %s (%s, %d attractions)", rec.Type, rec.Locale, len(rec.Attractions))
		}
	}
	log.Printf("✓ Upserted %d recommendations", len(entries))
	return nil
}
