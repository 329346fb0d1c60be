package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"aura/internal/sweeper"
	"aura/pkg/api"
	"aura/pkg/api/handlers"
	"aura/pkg/artifacts"
	"aura/pkg/banner"
	"aura/pkg/chat"
	"aura/pkg/config"
	"aura/pkg/logger"
	"aura/pkg/persona"
	"aura/pkg/reply"
	"aura/pkg/schedule"
	"aura/pkg/security"
	"aura/pkg/store"
)

func main() {
	// build metadata - set via ldflags during build/release
	var (
		version = "dev"
		commit  = "none"
	)
	_ = godotenv.Load(".env")
	addrVal, dbVal, cfgVal, setFlags := config.ParseCommandFlags()

	// Resolve config path (file flag wins over env)
	cfgPath := config.ResolveConfigPath(cfgVal, setFlags["config"])

	cfg, envUsed, err := config.LoadEffective(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Flags explicitly set win over env/config.
	var addr string
	var dbPath string
	if !setFlags["addr"] {
		addr = cfg.Addr()
	} else {
		addr = addrVal
	}
	if !setFlags["db"] {
		if p := cfg.Server.DBPath; p != "" {
			dbPath = p
		} else {
			dbPath = dbVal
		}
	} else {
		dbPath = dbVal
	}

	logger.InitWithLevel(cfg.Logging.Level)

	if err := store.Open(dbPath); err != nil {
		log.Fatalf("failed to open pebble at %s: %v", dbPath, err)
	}

	engine := chat.NewEngine()
	engine.Restore()
	col := artifacts.NewCollection()
	col.Restore()
	queue := schedule.NewQueue()
	queue.Restore()

	ctx, cancel := context.WithCancel(context.Background())

	gem, err := persona.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("failed to init gemini client: %v", err)
	}

	minDelay := cfg.Reply.MinDelay.Duration()
	maxDelay := cfg.Reply.MaxDelay.Duration()
	sched := reply.NewScheduler(engine, gem, minDelay, maxDelay)
	sched.Start(ctx)

	cryst := artifacts.NewCrystallizer(engine, col, gem)

	sweepCancel, err := sweeper.Start(ctx, cfg.Sweep, engine)
	if err != nil {
		log.Fatalf("invalid sweep config: %v", err)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigc
		logger.Info("signal_shutdown", "signal", s.String())
		sweepCancel()
		sched.Stop()
		cancel()
		if err := store.Close(); err != nil {
			logger.Error("store_close_failed", "error", err.Error())
		}
		os.Exit(0)
	}()

	// Config sources summary for the startup banner.
	srcs := []string{}
	if len(setFlags) > 0 {
		srcs = append(srcs, "flags")
	}
	if envUsed {
		srcs = append(srcs, "env")
	}
	if _, err := config.Load(cfgPath); err == nil {
		srcs = append(srcs, "config")
	}
	verStr := version
	if commit != "none" {
		verStr = verStr + " (" + commit + ")"
	}
	banner.Print(addr, dbPath, strings.Join(srcs, ", "), verStr)

	deps := handlers.Deps{
		Engine:       engine,
		Scheduler:    sched,
		Crystallizer: cryst,
		Artifacts:    col,
		Scheduled:    queue,
	}

	mux := http.NewServeMux()

	// Liveness probe used by deployment systems and CI
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{\"status\":\"ok\"}"))
	})

	// API handler (catch-all under /)
	mux.Handle("/", api.Handler(deps))

	// Serve Swagger UI at /docs and the OpenAPI spec at /openapi.yaml
	mux.Handle("/docs/", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))
	mux.Handle("/openapi.yaml", http.FileServer(http.Dir("./docs")))
	mux.Handle("/metrics", promhttp.Handler())

	secCfg := security.SecConfig{}
	secCfg.AllowedOrigins = append(secCfg.AllowedOrigins, cfg.Security.CORS.AllowedOrigins...)
	if cfg.Security.RateLimit.RPS > 0 {
		secCfg.RPS = cfg.Security.RateLimit.RPS
	}
	if cfg.Security.RateLimit.Burst > 0 {
		secCfg.Burst = cfg.Security.RateLimit.Burst
	}

	wrapped := security.Middleware(secCfg)(mux)

	logger.Info("server_listening", "addr", addr)
	if err := http.ListenAndServe(addr, wrapped); err != nil {
		log.Fatal(err)
	}
}
