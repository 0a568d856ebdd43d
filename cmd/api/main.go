package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"plugshop/internal/auth"
	"plugshop/internal/db"
	"plugshop/internal/domain/storage"
	"plugshop/internal/kv"
	"plugshop/internal/ratelimiter"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() rateLimiterConfig {
	// Default values
	defaultRequests := 100
	defaultWindow := 15 * time.Minute
	defaultEnabled := true

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATE_LIMIT_MAX_REQUESTS"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil && parsedVal > 0 {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMIT_MAX_REQUESTS, defaulting to", defaultRequests)
		}
	}

	window := defaultWindow
	if val, exists := os.LookupEnv("RATE_LIMIT_WINDOW"); exists {
		if parsedVal, err := time.ParseDuration(val); err == nil && parsedVal > 0 {
			window = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMIT_WINDOW, defaulting to", defaultWindow)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return rateLimiterConfig{
		general: ratelimiter.Config{RequestsPerTimeFrame: requestsPerTimeFrame, TimeFrame: window, Enabled: enabled},
		// Login attempts are capped regardless of the general setting.
		auth:  ratelimiter.Config{RequestsPerTimeFrame: 5, TimeFrame: 15 * time.Minute, Enabled: enabled},
		admin: ratelimiter.Config{RequestsPerTimeFrame: 200, TimeFrame: window, Enabled: enabled},
	}
}

// NewLogger creates a new zap logger: coloured console output in development,
// JSON in production.
func NewLogger(env string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if env == "production" {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %s\n", key, fallback)
		return fallback
	}
	return d
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// validate refuses to start a production server without its secrets.
func (c config) validate() error {
	if c.env != "production" {
		return nil
	}
	var missing []string
	if c.auth.token.secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.auth.token.refreshSecret == "" {
		missing = append(missing, "JWT_REFRESH_SECRET")
	}
	if os.Getenv("REDIS_URL") == "" {
		missing = append(missing, "REDIS_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

var version = "1.0.0"

//	@title			Plug Shop API
//	@description	Catalogue, promo codes and back-office API for the Plug Shop storefront.

//	@BasePath					/api
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := config{
		addr:           getEnv("ADDR", ":5000"),
		env:            getEnv("ENV", "development"),
		allowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		redis: redisConfig{
			url:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
			poolSize:    20,
			maxIdleTime: getEnv("REDIS_MAX_IDLE_TIME", "15m"),
		},
		auth: authConfig{
			token: tokenConfig{
				secret:          os.Getenv("JWT_SECRET"),
				refreshSecret:   os.Getenv("JWT_REFRESH_SECRET"),
				accessTokenExp:  getDuration("JWT_EXPIRES_IN", 15*time.Minute),
				refreshTokenExp: getDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
				iss:             "plugshop",
			},
		},
		rateLimiter:   LoadRateLimiterConfig(),
		cloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}

	logger, err := NewLogger(cfg.env)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if err := cfg.validate(); err != nil {
		logger.Fatal(err)
	}

	// Redis
	client, err := db.New(cfg.redis.url, cfg.redis.poolSize, cfg.redis.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer client.Close()
	logger.Info("redis connection pool established")

	store := storage.NewContainer(kv.NewRedis(client))

	// Cloudinary is optional; without it uploads answer 501.
	var cld *cloudinary.Cloudinary
	if cfg.cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.cloudinaryURL)
		if err != nil {
			logger.Fatal(err)
		}
	} else {
		logger.Warn("CLOUDINARY_URL not set, uploads disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jwtAuthenticator := auth.NewJWTAuthenticator(auth.Config{
		Secret:        cfg.auth.token.secret,
		RefreshSecret: cfg.auth.token.refreshSecret,
		AccessTTL:     cfg.auth.token.accessTokenExp,
		RefreshTTL:    cfg.auth.token.refreshTokenExp,
		Audience:      cfg.auth.token.iss,
		Issuer:        cfg.auth.token.iss,
	})

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		cld:           cld,
		authenticator: jwtAuthenticator,
		rateLimiter:   newRateLimiters(ctx, cfg.rateLimiter),
		metrics:       newMetrics(),
	}

	//Metrics collected http://localhost:5000/api/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("redis", expvar.Func(func() any {
		return client.PoolStats()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	app.trackActiveEventEvery(ctx, activeEventInterval)

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

func newRateLimiters(ctx context.Context, cfg rateLimiterConfig) ratelimiter.Set {
	build := func(c ratelimiter.Config) ratelimiter.Limiter {
		if !c.Enabled {
			return nil
		}
		return ratelimiter.NewFixedWindowLimiter(ctx, c.RequestsPerTimeFrame, c.TimeFrame)
	}
	return ratelimiter.Set{
		General: build(cfg.general),
		Auth:    build(cfg.auth),
		Admin:   build(cfg.admin),
	}
}
