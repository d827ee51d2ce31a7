// Command backfill_profile_urls finds LinkedIn profile URLs for stored
// candidates that are missing one and writes them back to the resume table.
//
// Usage:
//
//	go run ./cmd/tools/backfill_profile_urls -limit 50 -dry-run
package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"time"

	"go.uber.org/zap"

	"recruiter-platform/internal/config"
	"recruiter-platform/internal/discovery"
	"recruiter-platform/internal/logger"
	"recruiter-platform/internal/storage"
)

func main() {
	var (
		limit  = flag.Int("limit", 100, "maximum number of candidates to process")
		dryRun = flag.Bool("dry-run", false, "look up URLs but do not write to the database")
		pause  = flag.Duration("pause", 2*time.Second, "delay between search API calls")
	)
	flag.Parse()

	cfg := config.LoadConfig()

	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		stdlog.Fatal("logger init:", err)
	}
	defer log.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("set DATABASE_URL environment variable")
	}
	if cfg.SerpAPIKey == "" {
		log.Fatal("set SERPAPI_KEY environment variable")
	}

	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer db.Close()

	finder := discovery.NewFinder(cfg.SerpAPIKey, log.Named("finder"))
	ctx := context.Background()

	candidates, err := db.ListCandidatesMissingProfileURL(ctx, *limit)
	if err != nil {
		log.Fatal("list candidates", zap.Error(err))
	}
	log.Info("candidates missing profile URL", zap.Int("count", len(candidates)))

	var found, missed, failed int
	for i, c := range candidates {
		if i > 0 {
			time.Sleep(*pause)
		}

		url, err := finder.SearchProfile(ctx, c.PersonName, c.Company)
		if errors.Is(err, discovery.ErrProfileNotFound) {
			missed++
			log.Info("no profile found",
				zap.String("resume_id", c.ResumeID),
				zap.String("name", c.PersonName),
			)
			continue
		}
		if err != nil {
			failed++
			log.Warn("profile search failed",
				zap.String("resume_id", c.ResumeID),
				zap.Error(err),
			)
			continue
		}

		log.Info("profile found",
			zap.String("resume_id", c.ResumeID),
			zap.String("name", c.PersonName),
			zap.String("url", url),
		)
		if *dryRun {
			found++
			continue
		}
		if err := db.UpdateCandidateProfileURL(ctx, c.ResumeID, url); err != nil {
			failed++
			log.Warn("update failed", zap.String("resume_id", c.ResumeID), zap.Error(err))
			continue
		}
		found++
	}

	log.Info("backfill complete",
		zap.Int("found", found),
		zap.Int("not_found", missed),
		zap.Int("failed", failed),
		zap.Bool("dry_run", *dryRun),
	)
}
