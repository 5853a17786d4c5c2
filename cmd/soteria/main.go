package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/soteria-labs/soteria/pkg/config"
	"github.com/soteria-labs/soteria/pkg/engine"
	"github.com/soteria-labs/soteria/pkg/lexicon"
	"github.com/soteria-labs/soteria/pkg/rules"
	"github.com/soteria-labs/soteria/pkg/store"
)

const Version = "0.1.0"

// Moderator bundles the analysis engine with its persistence and cache.
// Storage and cache are optional and gracefully degrade if unavailable.
type Moderator struct {
	engine *engine.Engine
	store  store.AnalysisStore
	cache  *store.VerdictCache
	config *config.Config
}

// resolvePolicy layers the threshold sources. Precedence: builtin defaults,
// then the artifact policy, then thresholds explicitly set in the
// environment.
func resolvePolicy(cfg *config.Config, artifacts *config.Artifacts) engine.Policy {
	policy := engine.DefaultPolicy()
	if artifacts.Policy != nil {
		policy = *artifacts.Policy
	}
	if artifacts.Policy == nil || config.HasEnv("SOTERIA_TOXIC_THRESHOLD") {
		policy.ToxicThreshold = cfg.ToxicThreshold
	}
	if artifacts.Policy == nil || config.HasEnv("SOTERIA_ACTIVATION_THRESHOLD") {
		policy.ActivationThreshold = cfg.ActivationThreshold
	}
	return policy
}

func NewModerator(cfg *config.Config) (*Moderator, error) {
	if cfg == nil {
		cfg = config.New()
	}

	artifacts, err := config.LoadArtifacts(cfg.ArtifactPath)
	if err != nil {
		return nil, err
	}

	registry, err := rules.Build(artifacts.Rules)
	if err != nil {
		return nil, fmt.Errorf("rule registry: %w", err)
	}
	if dropped := registry.Disable(cfg.DisabledRules); dropped > 0 {
		log.Printf("[STARTUP] Disabled %d detection rules by configuration", dropped)
	}
	lex, err := lexicon.Build(&artifacts.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}
	log.Printf("[STARTUP] Loaded %d detection rules, %d lexicon entries",
		registry.TotalRules(), lex.Size())

	policy := resolvePolicy(cfg, artifacts)

	var backend engine.ClassifierBackend
	if cfg.EnableClassifier {
		hugotCfg := engine.HugotConfig{
			ModelPath:       cfg.ModelPath,
			ModelName:       cfg.ModelName,
			OnnxLibraryPath: cfg.OnnxLibraryPath,
		}
		if b := engine.NewHugotBackendWithFallback(hugotCfg); b != nil {
			backend = b
			log.Println("[STARTUP] Toxicity classifier enabled (hugot/ONNX)")
		} else {
			log.Println("[STARTUP] Toxicity classifier disabled, heuristic-only mode")
		}
	} else {
		log.Println("[STARTUP] Toxicity classifier disabled by configuration")
	}

	eng, err := engine.New(registry, engine.NewSentimentScorer(lex), engine.Options{
		Classifier:   backend,
		Policy:       &policy,
		Templates:    artifacts.Templates,
		Resources:    artifacts.ResourceTable(),
		InferTimeout: time.Duration(cfg.InferTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	m := &Moderator{engine: eng, config: cfg}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		m.store = pg
		log.Println("[STARTUP] History store: postgres")
	} else {
		m.store = store.NewMemoryStore(cfg.HistorySize)
		log.Printf("[STARTUP] History store: in-memory (capacity %d)", cfg.HistorySize)
	}

	if cfg.RedisAddr != "" {
		cache, err := store.NewVerdictCache(cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			log.Printf("[WARN] Verdict cache disabled: %v", err)
		} else {
			m.cache = cache
			log.Printf("[STARTUP] Verdict cache: redis at %s (ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
		}
	}

	return m, nil
}

// Analyze runs one request through the cache and engine, then records the
// outcome. Store and cache failures are logged, never surfaced.
func (m *Moderator) Analyze(ctx context.Context, req engine.AnalysisRequest) (*engine.AnalysisResult, error) {
	key := ""
	if m.cache != nil {
		key = store.Key(req.Text, m.engine.Policy().EffectiveThreshold(req.UserSensitivity))
		if cached, err := m.cache.Get(ctx, key); err != nil {
			log.Printf("[WARN] cache lookup failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	result, err := m.engine.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		if err := m.cache.Put(ctx, key, result); err != nil {
			log.Printf("[WARN] cache store failed: %v", err)
		}
	}
	rec := store.FromResult(uuid.NewString(), req, result)
	if err := m.store.Save(ctx, rec); err != nil {
		log.Printf("[WARN] history store failed: %v", err)
	}
	return result, nil
}

func (m *Moderator) Close() {
	if m.cache != nil {
		_ = m.cache.Close()
	}
	_ = m.store.Close()
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cfg := config.New()
		if len(os.Args) > 2 {
			cfg.Port = os.Args[2]
		}
		runHTTPServer(cfg)
	case "analyze":
		if len(os.Args) < 3 {
			fmt.Println("Usage: soteria analyze <text>")
			os.Exit(1)
		}
		runCLIAnalyze(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("Soteria v%s\n", Version)
		fmt.Println("Content moderation engine")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Soteria v%s - Content Moderation Engine\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  soteria serve [port]     Start HTTP server (default: 8000)")
	fmt.Println("  soteria analyze <text>   Analyze text from the command line")
	fmt.Println("  soteria version          Show version")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  SOTERIA_MODEL_PATH         Path to ONNX toxicity model directory")
	fmt.Println("  SOTERIA_TOXIC_THRESHOLD    Toxicity cut, 0.0-1.0 (default: 0.5)")
	fmt.Println("  SOTERIA_ARTIFACTS          Path to a YAML tuning file")
	fmt.Println("  DATABASE_URL               Postgres DSN for durable history")
	fmt.Println("  REDIS_ADDR                 Redis host:port for the verdict cache")
}

func runCLIAnalyze(text string) {
	cfg := config.New()
	mod, err := NewModerator(cfg)
	if err != nil {
		log.Fatalf("[STARTUP] FATAL: %v", err)
	}
	defer mod.Close()

	result, err := mod.Analyze(context.Background(), engine.AnalysisRequest{Text: text})
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}

func runHTTPServer(cfg *config.Config) {
	mod, err := NewModerator(cfg)
	if err != nil {
		log.Fatalf("[STARTUP] FATAL: %v", err)
	}
	defer mod.Close()

	app := fiber.New(fiber.Config{
		AppName: cfg.ServiceName,
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":           "ok",
			"version":          Version,
			"classifier_ready": mod.engine.ClassifierReady(),
			"inference":        mod.engine.InferenceStats(),
			"policy_version":   mod.engine.Policy().Version,
		})
	})

	app.Post("/analyze", func(c fiber.Ctx) error {
		var req engine.AnalysisRequest
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}

		result, err := mod.Analyze(c.Context(), req)
		switch {
		case errors.Is(err, engine.ErrEmptyInput):
			return c.Status(400).JSON(fiber.Map{"error": "text must not be empty"})
		case errors.Is(err, engine.ErrInputTooLong):
			return c.Status(400).JSON(fiber.Map{
				"error": fmt.Sprintf("text exceeds %d characters", engine.MaxTextLength),
			})
		case err != nil:
			log.Printf("analyze failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "internal error"})
		}
		return c.JSON(result)
	})

	app.Get("/history", func(c fiber.Ctx) error {
		limit := 50
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		records, err := mod.store.Recent(c.Context(), limit)
		if err != nil {
			log.Printf("history query failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "internal error"})
		}
		if records == nil {
			records = []store.Record{}
		}
		return c.JSON(fiber.Map{"records": records, "count": len(records)})
	})

	app.Get("/stats", func(c fiber.Ctx) error {
		stats, err := mod.store.Stats(c.Context())
		if err != nil {
			log.Printf("stats query failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "internal error"})
		}
		return c.JSON(stats)
	})

	log.Printf("Soteria HTTP server starting on :%s", cfg.Port)
	log.Printf("Endpoints:")
	log.Printf("  GET  /health   - Health and classifier status")
	log.Printf("  POST /analyze  - Analyze one text")
	log.Printf("  GET  /history  - Recent analysis records")
	log.Printf("  GET  /stats    - Aggregate moderation statistics")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
