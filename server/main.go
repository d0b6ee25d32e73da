package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"

	"ai-pokerbattle/server/agent"
	"ai-pokerbattle/server/llm"
	"ai-pokerbattle/server/match"
	"ai-pokerbattle/server/state"
	"ai-pokerbattle/server/store"
)

func main() {
	_ = godotenv.Load()
	loadAPIKeyFromSecret()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "battle",
	})

	names := [2]string{
		getenv("PLAYER_A_NAME", "Claude"),
		getenv("PLAYER_B_NAME", "GPT"),
	}
	models := [2]string{
		getenv("MODEL_A", "anthropic/claude-3.5-haiku"),
		getenv("MODEL_B", "openai/gpt-4o-mini"),
	}
	startStack := atoiDef(os.Getenv("START_STACK"), 1000)

	st := state.New(names, models, startStack)

	var db *store.DB
	if dsn := getenv("DATABASE_URL", ""); dsn != "" {
		p, err := store.Open(dsn)
		if err != nil {
			logger.Warn("archive disabled (open failed)", "err", err)
		} else {
			db = p
			defer db.Close()
			if asBool(os.Getenv("AUTO_MIGRATE")) {
				if err := store.Migrate(context.Background(), db); err != nil {
					logger.Warn("migrate failed, continuing without archive", "err", err)
					db = nil
				}
			}
		}
	}

	clock := quartz.NewReal()
	ad := agent.New(st, llm.New(), clock, logger.WithPrefix("agent"))
	if v := os.Getenv("THINK_DELAY_SECONDS"); v != "" {
		ad.ThinkDelay = time.Duration(atoiDef(v, 2)) * time.Second
	}
	if v := os.Getenv("BLUFF_CHANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			ad.BluffChance = f
		}
	}

	loop := match.NewLoop(st, ad, clock, logger.WithPrefix("match"), db, models)
	loop.CountdownSecs = atoiDef(os.Getenv("COUNTDOWN_SECONDS"), match.DefaultCountdownSeconds)
	loop.PauseSecs = atoiDef(os.Getenv("PAUSE_SECONDS"), match.DefaultPauseSeconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchSignals(cancel, logger)

	go loop.Run(ctx)

	// Auto-start unless explicitly disabled.
	if getenv("AUTO_START", "1") != "0" {
		st.SetPlaying(true)
		st.RequestCountdown()
		st.AddLog("🎮 AI Poker Battle initialized!")
	}

	addr := ":" + getenv("PORT", "5000")
	srv := &http.Server{Addr: addr, Handler: Router(st)}
	go func() {
		<-ctx.Done()
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
	}()

	logger.Info("serving", "addr", addr, "seatA", names[0], "seatB", names[1])
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", "err", err)
	}
}

func watchSignals(cancel context.CancelFunc, logger *log.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Info("shutting down")
	cancel()
}

// loadAPIKeyFromSecret populates OPENAI_API_KEY from a secrets file when the
// env var is unset, so container deployments can mount the key.
func loadAPIKeyFromSecret() {
	if os.Getenv("OPENAI_API_KEY") != "" {
		return
	}
	var candidates []string
	if p := os.Getenv("OPENAI_API_KEY_FILE"); strings.TrimSpace(p) != "" {
		candidates = append(candidates, p)
	}
	candidates = append(candidates,
		"./secrets/openai_api_key.txt",
		"./openai_api_key.txt",
		"/run/secrets/openai_api_key",
	)
	for _, path := range candidates {
		if b, err := os.ReadFile(path); err == nil {
			key := strings.TrimSpace(string(b))
			if key != "" {
				os.Setenv("OPENAI_API_KEY", key)
				return
			}
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
