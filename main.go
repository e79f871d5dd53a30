package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/questline-bot/questline/questline"
	"github.com/questline-bot/questline/questline/commands"
	"github.com/questline-bot/questline/questline/database"
	"github.com/questline-bot/questline/questline/database/repositories"
	"github.com/questline-bot/questline/questline/handlers"
	"github.com/questline-bot/questline/questline/logger"
	"github.com/questline-bot/questline/questline/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := questline.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	slog.Info("Starting Questline bot",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}
	slog.Info("Database ready",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	b := questline.New(*cfg, version, commit)
	b.DB = db

	bunDB := db.BunDB()
	b.UserRepository = repositories.NewUserRepository(bunDB)
	b.MissionRepository = repositories.NewMissionRepository(bunDB)
	b.AchievementRepository = repositories.NewAchievementRepository(bunDB)
	b.RewardRepository = repositories.NewRewardRepository(bunDB)
	b.ActivityRepository = repositories.NewActivityRepository(bunDB)

	b.MissionService = services.NewMissionService(bunDB, b.MissionRepository, b.UserRepository)
	b.RecurringService = services.NewRecurringService(b.MissionRepository, b.UserRepository)
	b.AchievementService = services.NewAchievementService(b.AchievementRepository, b.UserRepository)
	b.StoreService = services.NewStoreService(bunDB, b.RewardRepository, b.UserRepository)
	b.ActivityService = services.NewActivityService(b.ActivityRepository, b.UserRepository)

	h := handler.New()

	// System commands
	h.Command("/version", commands.VersionHandler(b))

	// Member commands
	h.Command("/profile", handlers.WrapWithLogging("profile", commands.ProfileHandler(b)))
	h.Command("/missions", handlers.WrapWithLogging("missions", commands.MissionsHandler(b)))
	h.Command("/badges", handlers.WrapWithLogging("badges", commands.BadgesHandler(b)))
	h.Command("/progress", handlers.WrapWithLogging("progress", commands.ProgressHandler(b)))
	h.Command("/complete", handlers.WrapWithLogging("complete", commands.CompleteHandler(b)))
	h.Command("/shop", handlers.WrapWithLogging("shop", commands.ShopHandler(b)))
	h.Command("/buy", handlers.WrapWithLogging("buy", commands.BuyHandler(b)))
	h.Autocomplete("/buy", commands.BuyAutocompleteHandler(b))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", commands.LeaderboardHandler(b)))

	// Admin commands
	h.Command("/createmission", handlers.WrapWithLogging("createmission", commands.CreateMissionHandler(b)))
	h.Command("/award", handlers.WrapWithLogging("award", commands.AwardHandler(b)))
	h.Command("/addreward", handlers.WrapWithLogging("addreward", commands.AddRewardHandler(b)))
	h.Command("/monthsummary", handlers.WrapWithLogging("monthsummary", commands.MonthSummaryHandler(b)))
	h.Command("/reset", handlers.WrapWithLogging("reset", commands.ResetHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), handlers.MessageHandler(b)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err))
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	b.Notifier = services.NewDiscordNotifier(b.Client, cfg.Bot.BroadcastChannel)
	b.Scheduler = services.NewScheduler(services.SchedulerConfig{
		Daily:        cfg.Gamify.Daily,
		Weekly:       cfg.Gamify.Weekly,
		TopCount:     cfg.Gamify.TopCount,
		TopPoints:    cfg.Gamify.TopPoints,
		SummaryLimit: cfg.Gamify.SummaryLimit,
	}, b.MissionService, b.RecurringService, b.ActivityService, b.Notifier)

	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	go b.Scheduler.Run(schedCtx)

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}
