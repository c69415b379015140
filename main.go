package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gochinamed/config"
	"gochinamed/cron"
	"gochinamed/database"
	"gochinamed/database/repository"
	"gochinamed/handlers"
	"gochinamed/routes"
	"gochinamed/services/booking"
	"gochinamed/services/flight"
	ai "gochinamed/services/intelligence"
	"gochinamed/services/itinerary"
	"gochinamed/services/plan"
	"gochinamed/services/pricing"
	"gochinamed/services/tasks"
	"gochinamed/services/user"
	"gochinamed/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB(logger)
	utils.InitCache()
	db := database.Database()

	// repositories.
	orders := repository.NewMongoOrderRepo(db, logger)
	entries := repository.NewMongoItineraryRepo(db, logger)
	users := repository.NewMongoUserRepository(db, logger)

	// advisory plan framing, cached in Redis. Absent key means deterministic plans only.
	var advisor ai.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("main: advisory generator disabled", zap.Error(err))
		} else {
			defer gemini.Close()
			store := ai.NewRedisResponseStore(utils.GetCacheClient(), cfg.AdvisorCacheTTL)
			advisor = ai.NewCachedGenerator(gemini, store, logger)
		}
	}

	converter := utils.NewCurrencyConverter(cfg.ExchangeRateAPIKey, cfg.SettlementCurrency, cfg.USDExchangeRate, logger)
	generator := plan.NewGenerator(advisor, converter, plan.Config{
		Currency:        cfg.SettlementCurrency,
		AdvisorTimeout:  cfg.AdvisorTimeout,
		FallbackUSDRate: cfg.USDExchangeRate,
	}, logger)
	scheduler := itinerary.NewScheduler(flight.NewStaticRouteEstimator(), cfg.Location(), cfg.CollaboratorTimeout, logger)

	var docCipher *user.DocumentCipher
	if cfg.DocumentKey != "" {
		c, err := user.NewDocumentCipher(cfg.DocumentKey)
		if err != nil {
			logger.Fatal("main: failed to initialize document cipher", zap.Error(err))
		}
		docCipher = c
	} else {
		logger.Warn("main: DOCUMENT_KEY not set, travel documents will not be stored")
	}
	profiles := &user.DefaultProfileService{Repo: users, Cipher: docCipher}

	queueOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	queue := asynq.NewClient(queueOpts)
	defer queue.Close()

	bookingService := &booking.DefaultBookingService{
		Generator:  generator,
		Fares:      flight.NewStaticFareEstimator(),
		Scheduler:  scheduler,
		Guard:      booking.NewDuplicateGuard(orders, cfg.DuplicateWindow, logger),
		Payments:   booking.NewPaymentHandler(logger),
		Orders:     orders,
		Itinerary:  entries,
		Profiles:   profiles,
		Dispatcher: tasks.NewAsynqDispatcher(queue, logger),
		FeePolicy: pricing.ServiceFeePolicy{
			Rates: pricing.ComponentRates{
				Medical: cfg.ServiceFeeMedical,
				Flight:  cfg.ServiceFeeFlight,
				Hotel:   cfg.ServiceFeeHotel,
			},
			MinFees: pricing.ComponentRates{
				Medical: cfg.ServiceFeeMinMedical,
				Flight:  cfg.ServiceFeeMinFlight,
				Hotel:   cfg.ServiceFeeMinHotel,
			},
			WaiveZeroComponents: cfg.ServiceFeeWaiveZero,
		},
		CollaboratorTimeout: cfg.CollaboratorTimeout,
		Logger:              logger,
	}

	confirmations := &booking.ConfirmationService{Orders: orders, Itinerary: entries, Logger: logger}
	worker := cron.InitConfirmationWorker(confirmations, logger)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	queueRedis := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB})
	defer queueRedis.Close()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second,
		[]*redis.Client{utils.GetCacheClient(), queueRedis}, database.MongoClient)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	handlerBundle := handlers.NewHandlerBundle(bookingHandler, handlers.Health)

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("Invalid TRUSTED_PROXIES", zap.Error(err))
	}
	routes.RegisterRoutes(router, handlerBundle, cfg.MaxRequestsPerMin, logger)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
