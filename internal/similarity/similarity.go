// Package similarity computes the convergence signal for the enhancement
// loop: a cosine similarity between document and target embeddings, rescaled
// to spread the narrow empirical range of real CV/job similarities across a
// fuller [0,1] band.
package similarity

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Rescaling constants. Raw CV/job cosine similarities cluster around
// 0.2-0.6; the logistic transform stretches that band so the convergence
// threshold is meaningful. The output is clamped above at 1.0 only; the
// lower end is left open and callers tolerate slightly negative values.
const (
	rawScale       = 1.41
	rawShift       = 0.27
	contrastPower  = 1.12
	logisticGain   = 1.46
	logisticOffset = 0.23
)

// Cosine computes the cosine similarity of two vectors. Degenerate inputs
// (empty vectors, zero norms, mismatched dimensions) yield exactly 0.0
// rather than an error: the caller treats "similarity unknown" as zero.
func Cosine(a, b []float64) float64 {
	raw, _ := cosine(a, b)
	return raw
}

// cosine reports the raw similarity and whether the inputs were well-formed.
// A degenerate pair scores 0.0 and must not be rescaled, since the rescaling
// maps a raw 0 to a non-zero band value.
func cosine(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

// Adjust applies the fixed monotonic rescaling to a raw cosine similarity.
// The result is clamped to at most 1.0. It is an ordering and
// threshold-comparison signal, not a calibrated probability.
func Adjust(raw float64) float64 {
	adjusted := sigmoid(signedPow(raw*rawScale+rawShift, contrastPower))*logisticGain - logisticOffset
	return math.Min(adjusted, 1.0)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// signedPow raises |x| to exp, preserving the sign of x. This keeps the
// transform defined and monotonic over the whole [-1,1] cosine range, where
// a plain power of a negative base is undefined.
func signedPow(x, exp float64) float64 {
	if x < 0 {
		return -math.Pow(-x, exp)
	}
	return math.Pow(x, exp)
}

// Embedder produces fixed-dimension embedding vectors for texts.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Scorer measures the adjusted semantic similarity between a document and a
// target text via an injected embedding capability. It holds no per-call
// state; concurrent use is safe.
type Scorer struct {
	embedder Embedder
	logger   *zap.Logger
}

// NewScorer creates a Scorer around the given embedding capability.
func NewScorer(embedder Embedder, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{embedder: embedder, logger: logger}
}

// Score embeds both texts and returns the adjusted cosine similarity.
// Embedding failures are returned to the caller; degenerate vector shapes
// score 0.0 without error.
func (s *Scorer) Score(ctx context.Context, docText, targetText string) (float64, error) {
	var docVec, targetVec []float64

	// The two embeddings are independent; fetch them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vec, err := s.embedder.Embed(gctx, docText)
		docVec = vec
		return err
	})
	g.Go(func() error {
		vec, err := s.embedder.Embed(gctx, targetText)
		targetVec = vec
		return err
	})
	if err := g.Wait(); err != nil {
		return 0.0, err
	}

	raw, ok := cosine(docVec, targetVec)
	if !ok {
		s.logger.Warn("degenerate embedding vectors, similarity unknown",
			zap.Int("doc_dim", len(docVec)),
			zap.Int("target_dim", len(targetVec)))
		return 0.0, nil
	}

	adjusted := Adjust(raw)
	s.logger.Debug("similarity computed",
		zap.Float64("raw", raw),
		zap.Float64("adjusted", adjusted))
	return adjusted, nil
}
