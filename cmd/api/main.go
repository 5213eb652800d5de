package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"globtek-backend/internal/auth"
	"globtek-backend/internal/cache"
	"globtek-backend/internal/config"
	"globtek-backend/internal/db"
	"globtek-backend/internal/handlers"
	"globtek-backend/internal/middleware"
	"globtek-backend/internal/notifications"
	"globtek-backend/internal/projects"
	"globtek-backend/internal/services"
	"globtek-backend/internal/storage/s3"
	"globtek-backend/internal/team"
	"globtek-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	jwtManager := &auth.Manager{
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
		Issuer:     "globtek-backend",
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	}

	avatarStore, err := s3.NewClient(s3.Config{
		Bucket:          cfg.AvatarBucket,
		Region:          cfg.AvatarRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		BaseURL:         cfg.AvatarBaseURL,
	})
	if err != nil {
		logger.Error("avatar storage init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	val := validation.New()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	accountRepo := team.NewAccountRepository(cols.Accounts)
	profileRepo := team.NewProfileRepository(cols.Profiles)
	teamService := team.NewService(accountRepo, profileRepo, avatarStore, cfg.Timezone)
	teamHandler := team.NewHandler(teamService, val, logger)

	servicesRepo := services.NewRepository(cols.Services)
	servicesManager := services.NewManager(servicesRepo, cfg.Timezone)
	servicesHandler := services.NewHandler(servicesManager, val, logger, cacheStore, cacheTTL)

	projectsHandler := projects.NewHandler(projects.NewCatalog(), logger)

	server := &handlers.Server{
		Cfg:      cfg,
		Val:      val,
		Log:      logger,
		JWT:      jwtManager,
		Accounts: handlers.NewAccountStore(cols.Accounts),
		Contacts: handlers.NewContactStore(cols.ContactMessages),
		Team:     teamService,
	}
	if mailer != nil {
		server.Mailer = mailer
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	contactLimiter := middleware.NewRateLimiter(cfg.RateLimitContact, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	adminGate := middleware.AdminAuth(cfg.AdminAPIKey, jwtManager)

	registerRoutes := func(api chi.Router) {
		api.Get("/health", server.Health)

		api.Get("/services", servicesHandler.PublicList)
		api.Get("/services/{slug}", servicesHandler.PublicGetBySlug)

		api.Get("/projects", projectsHandler.List)
		api.Get("/projects/categories", projectsHandler.Categories)
		api.Get("/projects/{slug}", projectsHandler.GetBySlug)

		api.With(contactLimiter.Middleware).Post("/contact", server.CreateContact)

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", server.Login)
			ar.Post("/refresh", server.Refresh)
			ar.Post("/logout", server.Logout)
			ar.Post("/register", server.Register)
			ar.Get("/session", server.GetSession)
		})

		api.Route("/admin", func(admin chi.Router) {
			// Important (chi): middlewares must be attached before defining routes.
			admin.Use(adminGate)

			admin.Get("/services", servicesHandler.AdminList)
			admin.Post("/services", servicesHandler.AdminCreate)
			admin.Get("/services/{id}", servicesHandler.AdminGetByID)
			admin.Put("/services/{id}", servicesHandler.AdminUpdate)
			admin.Delete("/services/{id}", servicesHandler.AdminDelete)

			admin.Get("/users", teamHandler.AdminList)
			admin.Post("/users", teamHandler.AdminCreate)
			admin.Get("/users/{id}", teamHandler.AdminGetByID)
			admin.Put("/users/{id}", teamHandler.AdminUpdate)
			admin.Delete("/users/{id}", teamHandler.AdminDelete)
			admin.Put("/users/{id}/avatar", teamHandler.AdminUploadAvatar)
			admin.Patch("/users/{id}/password", teamHandler.AdminUpdatePassword)

			admin.Get("/contacts", server.AdminListContacts)
		})
	}

	// Supports /api/... (legacy) and /api/v1/... .
	r.Route("/api", registerRoutes)
	r.Route("/api/v1", registerRoutes)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
