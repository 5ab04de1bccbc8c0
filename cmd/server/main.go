package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/istlab/raffle-backend/internal/auth"
	"github.com/istlab/raffle-backend/internal/config"
	"github.com/istlab/raffle-backend/internal/engine"
	"github.com/istlab/raffle-backend/internal/handlers"
	"github.com/istlab/raffle-backend/internal/logger"
	"github.com/istlab/raffle-backend/internal/models"
	"github.com/istlab/raffle-backend/internal/notify"
	"github.com/istlab/raffle-backend/internal/store"
)

func main() {
	// Load config & init
	cfg := config.Load()
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	// Snapshot persistence: postgres when configured, JSON file otherwise.
	var (
		db   *gorm.DB
		snap store.Store
	)
	if cfg.UseDatabase() {
		db = config.InitDB(cfg)
		models.Migrate(db)
		auth.Init(cfg.JWTSecret)
		snap = store.NewPostgres(db)
		zap.L().Info("using postgres snapshot store")
	} else {
		snap = store.NewFile(cfg.SnapshotFile)
		zap.L().Info("no database configured, using file snapshot store",
			zap.String("path", cfg.SnapshotFile))
	}

	// Build the engine and restore persisted state.
	eng := engine.New()
	defer eng.Close()
	if loaded, err := snap.Load(); err != nil {
		zap.L().Warn("failed to load snapshot, starting fresh", zap.Error(err))
	} else if loaded != nil {
		eng.Restore(*loaded)
		zap.L().Info("restored snapshot",
			zap.Int("tickets", len(loaded.Tickets)),
			zap.Int("tiers", len(loaded.PrizeTiers)),
			zap.Int("records", len(loaded.DrawRecords)))
	}

	// Persist after every mutation, best-effort: a write failure is logged
	// but never rolls back the in-memory change.
	eng.SubscribeChange(func(s models.Snapshot) {
		if err := snap.Save(s); err != nil {
			zap.L().Warn("snapshot save failed", zap.Error(err))
		}
	})

	// Draw events go to the optional webhook (audio/confetti collaborators).
	notifier := notify.NewClient(cfg.WebhookURL)
	eng.SubscribeDraw(notifier.Subscriber())
	eng.SubscribeDraw(func(ev engine.DrawCompleted) {
		zap.L().Info("draw completed",
			zap.Int("ticket", ev.TicketNumber),
			zap.String("tier", ev.Tier.Name),
			zap.Int("remaining", ev.Tier.Remaining))
	})

	// Set up the router.
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(config.CORSMiddleware(cfg.FrontendURL))

	h := handlers.New(eng, db)
	h.RegisterRoutes(r)

	zap.L().Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zap.L().Fatal("failed to run server", zap.Error(err))
	}
}
