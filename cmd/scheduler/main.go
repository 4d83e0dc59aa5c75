package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lumamail/lumamail-backend/internal/config"
	"github.com/lumamail/lumamail-backend/internal/db"
	"github.com/lumamail/lumamail-backend/internal/repository"
	"github.com/lumamail/lumamail-backend/internal/scheduler"
)

// The scheduler is a single-shot batch binary meant to be run from cron.
// Exit code 0 covers the nothing-due case; 1 means it could not start.
func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	if err := godotenv.Load(); err != nil {
		logger.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	conn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Printf("Database connection error: %v", err)
		os.Exit(1)
	}
	defer conn.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}

	runner := &scheduler.Runner{
		Store: campaignRepo,
		Now:   time.Now,
		Log:   logger,
	}

	logger.Printf("Scheduler simulation started: %s", time.Now().Format("2006-01-02 15:04:05"))

	report, err := runner.Run()
	if err != nil {
		logger.Printf("Error querying for due campaigns: %v", err)
		os.Exit(1)
	}

	logger.Printf("Scheduler simulation finished: %s", time.Now().Format("2006-01-02 15:04:05"))
	logger.Printf("Successfully processed: %d campaign(s).", report.Processed)
	logger.Printf("Failed to process: %d campaign(s).", report.Failed)
	if report.Skipped > 0 {
		logger.Printf("Skipped as no longer scheduled: %d campaign(s).", report.Skipped)
	}
}
