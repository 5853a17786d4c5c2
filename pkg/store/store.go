// Package store persists analysis outcomes for the history and analytics
// endpoints. Two implementations exist: an in-memory ring for single-node
// deployments and a Postgres-backed store for durable history.
package store

import (
	"context"
	"time"

	"github.com/soteria-labs/soteria/pkg/engine"
)

// Record is one stored analysis outcome. Text is truncated at write time so
// the history endpoint never replays full abusive payloads.
type Record struct {
	ID            string          `json:"id"`
	Text          string          `json:"text"`
	Context       string          `json:"context,omitempty"`
	ToxicityScore float64         `json:"toxicity_score"`
	IsToxic       bool            `json:"is_toxic"`
	Category      engine.Category `json:"category"`
	Severity      engine.Severity `json:"severity"`
	Sentiment     float64         `json:"sentiment_score"`
	Confidence    float64         `json:"confidence"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Stats is the aggregate view served by the analytics endpoint.
type Stats struct {
	TotalAnalyzed int                     `json:"total_analyzed"`
	ToxicCount    int                     `json:"toxic_count"`
	ToxicRate     float64                 `json:"toxic_rate"`
	ByCategory    map[engine.Category]int `json:"by_category"`
	BySeverity    map[engine.Severity]int `json:"by_severity"`
}

// AnalysisStore is the persistence contract. Implementations must be safe
// for concurrent use.
type AnalysisStore interface {
	// Save stores one record. Never blocks the analysis path on failure;
	// callers log and continue.
	Save(ctx context.Context, rec Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Stats aggregates everything stored so far.
	Stats(ctx context.Context) (Stats, error)

	// Close releases underlying connections.
	Close() error
}

// Text stored per record is capped at this many runes.
const maxStoredTextRunes = 500

func truncateText(s string) string {
	r := []rune(s)
	if len(r) <= maxStoredTextRunes {
		return s
	}
	return string(r[:maxStoredTextRunes])
}

// FromResult builds a Record from an analysis outcome.
func FromResult(id string, req engine.AnalysisRequest, res *engine.AnalysisResult) Record {
	return Record{
		ID:            id,
		Text:          truncateText(res.Text),
		Context:       req.Context,
		ToxicityScore: res.ToxicityScore,
		IsToxic:       res.IsToxic,
		Category:      res.Category,
		Severity:      res.Severity,
		Sentiment:     res.SentimentScore,
		Confidence:    res.Confidence,
		CreatedAt:     res.AnalysisTimestamp,
	}
}
