package main

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/config"
	"github.com/turfbook/match-admin/internal/database"
	"github.com/turfbook/match-admin/internal/handler"
	"github.com/turfbook/match-admin/internal/queue"
	"github.com/turfbook/match-admin/internal/repository"
	"github.com/turfbook/match-admin/internal/router"
	"github.com/turfbook/match-admin/internal/stats"
)

func main() {
	// .env is a local convenience; deployed environments inject real
	// variables and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when unreachable; caches degrade to memory

	userRepo := repository.NewUserRepo(db)
	venueRepo := repository.NewVenueRepo(db)
	matchRepo := repository.NewMatchRepo(db)
	participantRepo := repository.NewParticipantRepo(db)
	promoRepo := repository.NewPromoRepo(db)
	seasonRepo := repository.NewSeasonRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	accountingRepo := repository.NewAccountingRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	events := queue.NewPublisher(cfg.AMQPURL)

	// Audit consumer for workflow events; reconnects on its own.
	go func() {
		if err := queue.StartWorkflowConsumer(cfg.AMQPURL); err != nil {
			log.Printf("workflow consumer stopped: %v", err)
		}
	}()

	provider := stats.NewRetryingProvider(
		stats.NewClient(stats.Config{BaseURL: cfg.StatsBaseURL, APIKey: cfg.StatsAPIKey}),
		3, 2*time.Second,
	)

	sweeper := &stats.Sweeper{
		Matches:  matchRepo,
		Stats:    statsRepo,
		Provider: provider,
		Events:   events,
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(cfg.StatsPollEvery),
		gocron.NewTask(func() { sweeper.Run(context.Background()) }),
	); err != nil {
		log.Fatalf("stats poll job: %v", err)
	}
	scheduler.Start()
	defer func() { _ = scheduler.Shutdown() }()

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, userRepo),
		Users:       handler.NewUserHandler(userRepo),
		Venues:      handler.NewVenueHandler(venueRepo),
		Matches:     handler.NewMatchHandler(matchRepo),
		Recurring:   handler.NewRecurringHandler(matchRepo),
		Cancel:      handler.NewCancelHandler(matchRepo, participantRepo, events),
		Participant: handler.NewParticipantHandler(matchRepo, participantRepo),
		Promos:      handler.NewPromoHandler(promoRepo),
		Seasons:     handler.NewSeasonHandler(seasonRepo),
		Leaderboard: handler.NewLeaderboardHandler(seasonRepo, rdb, cfg.LeaderboardTTL),
		Tickets:     handler.NewTicketHandler(ticketRepo),
		Accounting:  handler.NewAccountingHandler(accountingRepo),
		Stats:       handler.NewStatsHandler(matchRepo, statsRepo, userRepo, provider, events),
		Uploads:     handler.NewUploadHandler(matchRepo, statsRepo),
	}

	e := echo.New()
	router.Register(e, h, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
