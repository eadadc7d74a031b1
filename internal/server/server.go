package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/farellandr/dealhub/config"
	"github.com/farellandr/dealhub/internal/cache"
	"github.com/farellandr/dealhub/internal/deals"
	"github.com/farellandr/dealhub/internal/events"
	"github.com/farellandr/dealhub/internal/handlers"
	"github.com/farellandr/dealhub/internal/logger"
	"github.com/farellandr/dealhub/internal/metrics"
	"github.com/farellandr/dealhub/internal/middleware"
	"github.com/farellandr/dealhub/internal/migrate"
	"github.com/farellandr/dealhub/internal/models"
	"github.com/farellandr/dealhub/internal/repository"
	"github.com/farellandr/dealhub/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Log.Level, cfg.Log.Format, nil))

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Migrations.Enabled {
		if err := migrate.RunMigrations(db, cfg.Migrations.Path); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services, cleanup := buildServices(cfg, db, registry)
	defer cleanup()

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	setupRoutes(r, db, services, registry)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildServices wires repositories, the deal service and the optional Redis
// and Kafka collaborators. The returned func releases them.
func buildServices(cfg *config.Config, db *gorm.DB, reg prometheus.Registerer) (*middleware.Services, func()) {
	v := validator.New()
	dealRepo := repository.NewDealRepository(db, v)
	tagRepo := repository.NewTagRepository(db, v)
	mediaRepo := repository.NewMediaRepository(db)
	accounts := repository.NewAccountRepository(db)

	var closers []func() error

	var tagStore deals.TagStore = tagRepo
	var tagCache middleware.TagInvalidator
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			slog.Warn("redis unavailable, tag names will be read from the database", "addr", cfg.Redis.Addr, "error", err)
		}
		c := cache.NewTagCache(client, tagRepo, cfg.Redis.TagTTL)
		tagStore = c
		tagCache = c
		closers = append(closers, client.Close)
	}

	var publisher deals.VisitPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		p := events.NewVisitPublisher(cfg.Kafka.Brokers, cfg.Kafka.VisitTopic)
		publisher = p
		closers = append(closers, p.Close)
	}

	dealService := deals.NewService(
		dealRepo,
		repository.NewVisitRepository(db),
		mediaRepo,
		tagStore,
		publisher,
		metrics.NewDealMetrics(reg),
	)

	services := &middleware.Services{
		Deals:    dealService,
		DealRepo: dealRepo,
		TagRepo:  tagRepo,
		Media:    mediaRepo,
		Accounts: accounts,
		TagCache: tagCache,
		Auth: middleware.AuthSettings{
			Secret:   cfg.Auth.JWTSecret,
			TokenTTL: cfg.Auth.TokenTTL,
		},
		MediaCfg: middleware.MediaSettings{
			UploadDir:    cfg.Media.UploadDir,
			BaseURL:      cfg.Media.BaseURL,
			MaxSizeBytes: cfg.Media.MaxSizeMB * 1024 * 1024,
		},
	}

	cleanup := func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				slog.Warn("failed to close collaborator", "error", err)
			}
		}
	}
	return services, cleanup
}

func setupRoutes(r *gin.Engine, db *gorm.DB, services *middleware.Services, gatherer prometheus.Gatherer) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.ServicesMiddleware(services))

	r.GET("/healthz", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	if services.MediaCfg.BaseURL != "" && services.MediaCfg.BaseURL[0] == '/' {
		r.Static(services.MediaCfg.BaseURL, services.MediaCfg.UploadDir)
	}

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
		public.POST("/staff/login", handlers.StaffLogin)
		public.GET("/tags", handlers.ListTags)

		dealPublic := public.Group("/deals")
		dealPublic.Use(middleware.ViewerMiddleware(services.Auth.Secret, services.Accounts))
		{
			dealPublic.GET("", handlers.ListDeals)
			dealPublic.GET("/:id", handlers.GetDeal)
			dealPublic.GET("/:id/meta/:title", handlers.GetDealMeta)
			dealPublic.GET("/:id/addresses", handlers.GetDealAddresses)
			dealPublic.GET("/:id/items", handlers.GetDealItems)
			dealPublic.GET("/:id/benefits", handlers.GetDealBenefits)
			dealPublic.GET("/:id/comments", handlers.GetDealComments)
		}
	}

	staff := r.Group("/v1")
	staff.Use(middleware.JWTAuthMiddleware(services.Auth.Secret, models.RoleAdmin, models.RoleEditor))
	{
		dealStaff := staff.Group("/deals")
		{
			dealStaff.POST("", handlers.CreateDeal)
			dealStaff.PUT("/:id", handlers.UpdateDeal)
			dealStaff.DELETE("/:id", handlers.DeleteDeal)
			dealStaff.POST("/:id/restore", handlers.RestoreDeal)
			dealStaff.POST("/:id/picture", handlers.UploadDealPicture)
		}

		tagStaff := staff.Group("/tags")
		{
			tagStaff.POST("", handlers.CreateTag)
			tagStaff.PUT("/:id", handlers.UpdateTag)
			tagStaff.DELETE("/:id", handlers.DeleteTag)
		}
	}
}
