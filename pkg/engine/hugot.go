package engine

// hugot.go - ONNX-backed toxicity classification via Hugot
//
// Wraps a Hugot text-classification pipeline as a ClassifierBackend. The
// default model family is toxic-bert style multi-label toxicity (labels:
// toxic, severe_toxic, obscene, threat, insult, identity_hate), but any
// text-classification ONNX model with a recognizable label scheme works.
//
// Runs fully local - no external API calls. Gracefully degrades when no
// model or ONNX runtime is available: the engine then fuses Pattern and
// Sentiment only.

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
)

// HugotConfig configures the ONNX classifier backend.
type HugotConfig struct {
	// ModelPath is the local path to the ONNX model directory.
	ModelPath string

	// ModelName is the HuggingFace model name, used to download the model
	// when ModelPath does not exist yet.
	ModelName string

	// OnnxLibraryPath is the directory containing libonnxruntime. Empty
	// falls back to Hugot's pure Go backend (slower, no native deps).
	OnnxLibraryPath string
}

// DefaultHugotConfig returns the default toxic-bert configuration, honoring
// SOTERIA_MODEL_PATH when set.
func DefaultHugotConfig() HugotConfig {
	cfg := HugotConfig{
		ModelName:       "unitary/toxic-bert",
		ModelPath:       "./models/toxic-bert",
		OnnxLibraryPath: defaultOnnxPath(),
	}
	if envPath := os.Getenv("SOTERIA_MODEL_PATH"); envPath != "" {
		cfg.ModelPath = envPath
		cfg.ModelName = ""
	}
	return cfg
}

func defaultOnnxPath() string {
	paths := []string{
		"/usr/lib/libonnxruntime.so",
		"/usr/local/lib/libonnxruntime.so",
		"/opt/homebrew/lib/libonnxruntime.dylib",
		"/usr/local/lib/libonnxruntime.dylib",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return filepath.Dir(p)
		}
	}
	return ""
}

// HugotBackend implements ClassifierBackend over a Hugot session.
type HugotBackend struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.RWMutex
	ready    bool
}

// NewHugotBackend initializes the session and pipeline. Returns an error if
// the model cannot be resolved; callers typically fall back to a nil backend.
func NewHugotBackend(cfg HugotConfig) (*HugotBackend, error) {
	b := &HugotBackend{}

	session, err := b.createSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	b.session = session

	modelPath, err := resolveModelPath(cfg)
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to resolve model path: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "toxicity-classifier",
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	b.pipeline = pipeline
	b.ready = true
	log.Printf("Toxicity classifier initialized (model: %s)", modelPath)
	return b, nil
}

// NewHugotBackendWithFallback returns a nil backend instead of an error so
// the engine starts in degraded mode when no model is available.
func NewHugotBackendWithFallback(cfg HugotConfig) *HugotBackend {
	b, err := NewHugotBackend(cfg)
	if err != nil {
		log.Printf("[WARN] ONNX classifier unavailable, running Pattern+Sentiment only: %v", err)
		return nil
	}
	return b
}

func (b *HugotBackend) createSession(cfg HugotConfig) (*hugot.Session, error) {
	if cfg.OnnxLibraryPath != "" {
		session, err := hugot.NewORTSession(
			options.WithOnnxLibraryPath(cfg.OnnxLibraryPath),
		)
		if err == nil {
			log.Printf("Classifier using ONNX Runtime backend")
			return session, nil
		}
		log.Printf("ONNX Runtime unavailable, falling back to Go backend: %v", err)
	}
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create Go session: %w", err)
	}
	log.Printf("Classifier using pure Go backend (slower, consider installing ONNX Runtime)")
	return session, nil
}

func resolveModelPath(cfg HugotConfig) (string, error) {
	if cfg.ModelPath != "" {
		if _, err := os.Stat(filepath.Join(cfg.ModelPath, "model.onnx")); err == nil {
			return cfg.ModelPath, nil
		}
	}
	if cfg.ModelName == "" {
		return "", fmt.Errorf("no model found at %q and no model name to download", cfg.ModelPath)
	}
	modelsDir := "./models"
	if err := os.MkdirAll(modelsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create models directory: %w", err)
	}
	log.Printf("Downloading model %s...", cfg.ModelName)
	modelPath, err := hugot.DownloadModel(cfg.ModelName, modelsDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model: %w", err)
	}
	return modelPath, nil
}

// Ready implements ClassifierBackend.
func (b *HugotBackend) Ready() bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ready
}

// Infer implements ClassifierBackend. The per-label scores are mapped onto
// harm categories; the overall probability is the strongest toxic label.
func (b *HugotBackend) Infer(ctx context.Context, text string) (*Prediction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.ready || b.pipeline == nil {
		return nil, fmt.Errorf("classifier backend not ready")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := b.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	if len(result.ClassificationOutputs) == 0 || len(result.ClassificationOutputs[0]) == 0 {
		return nil, fmt.Errorf("no classification output")
	}

	pred := &Prediction{Categories: make(map[Category]float64)}
	for _, out := range result.ClassificationOutputs[0] {
		score := float64(out.Score)
		cat, toxic := mapModelLabel(out.Label)
		if pred.Label == "" {
			pred.Label = out.Label
		}
		if !toxic {
			continue
		}
		if score > pred.Probability {
			pred.Probability = score
		}
		if cat != CategorySafe && score > pred.Categories[cat] {
			pred.Categories[cat] = score
		}
	}
	return pred, nil
}

// mapModelLabel translates a model label to a harm category. Different model
// families use different conventions:
// - toxic-bert: toxic, severe_toxic, obscene, threat, insult, identity_hate
// - binary detectors: LABEL_1/toxic vs LABEL_0/neutral
func mapModelLabel(label string) (Category, bool) {
	switch label {
	case "identity_hate", "identity_attack", "hate":
		return CategoryHateSpeech, true
	case "insult", "obscene", "threat", "harassment":
		return CategoryHarassment, true
	case "self_harm", "self-harm":
		return CategorySelfHarm, true
	case "spam":
		return CategorySpam, true
	case "toxic", "severe_toxic", "toxicity", "LABEL_1":
		return CategoryOther, true
	default:
		return CategorySafe, false
	}
}

// Close releases the ONNX session.
func (b *HugotBackend) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ready = false
	if b.session != nil {
		if err := b.session.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
	}
	return nil
}
