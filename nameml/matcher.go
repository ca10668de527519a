package nameml

import (
	"context"
	"errors"
	"io"
	"log"
	"math"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lobbylinks/lobbylinks/names"
)

// Embedder is the minimal surface the matcher needs; tests inject
// fakes with fixed vectors.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	Close() error
}

// OrtEmbedder wraps Encoder behind the Embedder interface.
type OrtEmbedder struct {
	enc *Encoder
}

func NewOrtEmbedder(cfg Config) (*OrtEmbedder, error) {
	enc := &Encoder{}
	if err := enc.Init(cfg); err != nil {
		return nil, err
	}
	return &OrtEmbedder{enc: enc}, nil
}

func (o *OrtEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	if o == nil || o.enc == nil {
		return nil, errors.New("nameml: embedder is not initialized")
	}
	return o.enc.Encode(text)
}

func (o *OrtEmbedder) Close() error {
	if o != nil && o.enc != nil {
		o.enc.Close()
		o.enc = nil
	}
	return nil
}

// Matcher scores name pairs via embedding cosine. Vectors are memoized
// in-process: roster name lists are scored against thousands of
// mentions, so almost every embedding is reused.
type Matcher struct {
	emb    Embedder
	vecs   *gocache.Cache
	disk   *diskCache
	logger *log.Logger
}

func NewMatcher(emb Embedder, logger *log.Logger) *Matcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Matcher{
		emb:    emb,
		vecs:   gocache.New(gocache.NoExpiration, gocache.NoExpiration),
		logger: logger,
	}
}

// EnableDiskCache persists vectors under dir so embeddings survive
// across runs. Keys include modelID: vectors from different models
// never collide.
func (m *Matcher) EnableDiskCache(dir, modelID string) error {
	disk, err := newDiskCache(dir, modelID)
	if err != nil {
		return err
	}
	m.disk = disk
	return nil
}

// Similarity returns embedding cosine clamped to [0, 1]. Failures
// score zero so the caller's cascade falls through to string metrics
// instead of aborting the run.
func (m *Matcher) Similarity(a, b string) float64 {
	if m == nil || m.emb == nil {
		return 0
	}
	va, err := m.vector(a)
	if err != nil {
		m.logger.Printf("nameml: embed %q: %v", a, err)
		return 0
	}
	vb, err := m.vector(b)
	if err != nil {
		m.logger.Printf("nameml: embed %q: %v", b, err)
		return 0
	}
	sim := Cosine(va, vb)
	if sim < 0 {
		return 0
	}
	return sim
}

func (m *Matcher) vector(s string) ([]float32, error) {
	key := names.FoldLower(s)
	if v, ok := m.vecs.Get(key); ok {
		return v.([]float32), nil
	}
	if m.disk != nil {
		vec, ok, err := m.disk.load(key)
		if err != nil {
			m.logger.Printf("nameml: cache read %q: %v", key, err)
		} else if ok {
			m.vecs.Set(key, vec, gocache.NoExpiration)
			return vec, nil
		}
	}
	vec, err := m.emb.EmbedText(context.Background(), key)
	if err != nil {
		return nil, err
	}
	m.vecs.Set(key, vec, gocache.NoExpiration)
	if m.disk != nil {
		if err := m.disk.save(key, vec); err != nil {
			m.logger.Printf("nameml: cache write %q: %v", key, err)
		}
	}
	return vec, nil
}

// Cosine computes cosine similarity of two vectors; mismatched or
// empty vectors score zero.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
