package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/afero"

	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/repositories"
	"github.com/sbilibin2017/gw-image-gallery/internal/services"
	"github.com/sbilibin2017/gw-image-gallery/internal/storage"
	"github.com/sbilibin2017/gw-image-gallery/internal/token"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Session store backends.
const (
	sessionStoreMemory = "memory"
	sessionStoreRedis  = "redis"
)

// How often the in-memory session store drops expired sessions.
const sessionSweepInterval = time.Minute

// Batch window for upload events, which are written inside the upload request.
const kafkaBatchTimeout = 10 * time.Millisecond

// config holds everything read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	SessionStore        string
	SessionTTLSecond    int
	SessionCookieSecure bool

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	UploadDir      string
	UploadMaxBytes int64

	KafkaBrokers []string
	KafkaTopic   string

	PodName  string
	NodeName string
}

// @title gw-image-gallery API
// @version 1.0.0
// @description Multi-user image gallery: accounts, sessions and per-user uploads
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session_id
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, database, session, storage and Kafka configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "0.0.0.0")
	cfg.AppPort = getEnv("PORT", "3000")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.PodName = getEnv("POD_NAME", "unknown")
	cfg.NodeName = getEnv("NODE_NAME", "unknown")

	// PostgreSQL config
	cfg.PGHost = getEnv("DB_HOST", "localhost")
	cfg.PGUser = getEnv("DB_USER", "postgres")
	cfg.PGPassword = getEnv("DB_PASSWORD", "password")
	cfg.PGDB = getEnv("DB_NAME", "loginapp")
	if cfg.PGPort, err = getInt("DB_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Session config
	cfg.SessionStore = strings.ToLower(getEnv("SESSION_STORE", sessionStoreMemory))
	if cfg.SessionStore != sessionStoreMemory && cfg.SessionStore != sessionStoreRedis {
		err = fmt.Errorf("SESSION_STORE: unknown backend %q", cfg.SessionStore)
		return
	}
	if cfg.SessionTTLSecond, err = getInt("SESSION_TTL_SECOND", "3600"); err != nil {
		return
	}
	if cfg.SessionCookieSecure, err = strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false")); err != nil {
		err = fmt.Errorf("SESSION_COOKIE_SECURE: %w", err)
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Upload config
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	if cfg.UploadMaxBytes, err = strconv.ParseInt(getEnv("UPLOAD_MAX_BYTES", "5242880"), 10, 64); err != nil {
		err = fmt.Errorf("UPLOAD_MAX_BYTES: %w", err)
		return
	}

	// Kafka config
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "uploads")

	return
}

// newKafkaWriter builds the upload event writer. Messages are keyed by user id.
func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           kafkaBatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// run initializes the logger, database, session store, storage and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, "pod", cfg.PodName, "node", cfg.NodeName); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Session store
	var sessionStore services.SessionStore
	switch cfg.SessionStore {
	case sessionStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		defer rdb.Close()
		redisRepo := repositories.NewSessionRedisRepository(rdb)
		if err := redisRepo.Ping(ctx); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		sessionStore = redisRepo
	default:
		memRepo := repositories.NewSessionMemoryRepository()
		go memRepo.Run(ctx, sessionSweepInterval)
		sessionStore = memRepo
	}
	logger.Log.Infow("Session store ready", "backend", cfg.SessionStore)

	// Upload events
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Publishing upload events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	uploadWriteRepo := repositories.NewUploadWriteRepository(db)
	uploadReadRepo := repositories.NewUploadReadRepository(db)

	fs := afero.NewOsFs()
	files := storage.NewDiskStorageFs(fs, cfg.UploadDir)

	// Initialize services
	ttl := time.Duration(cfg.SessionTTLSecond) * time.Second
	sessionService := services.NewSessionService(sessionStore, ttl)
	authService := services.NewAuthService(userReadRepo, userWriteRepo, sessionService)
	uploadService := services.NewUploadService(files, uploadWriteRepo, uploadReadRepo, kafkaWriter, cfg.UploadMaxBytes)

	r := newRouter(routerDeps{
		auth:       authService,
		sessions:   sessionService,
		uploads:    uploadService,
		cookie:     token.New(token.DefaultCookieName, sessionService.TTL(), cfg.SessionCookieSecure),
		fs:         fs,
		uploadDir:  cfg.UploadDir,
		podName:    cfg.PodName,
		nodeName:   cfg.NodeName,
		swaggerURL: fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
