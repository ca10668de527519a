// Package nameml scores person-name similarity with a small
// transformer encoder served through ONNX Runtime. It replaces exact
// comparison for mentions like "Jim Smith" vs "James R. Smith" where
// string metrics alone are too blunt.
package nameml

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Config locates the runtime, model and tokenizer artifacts.
type Config struct {
	OrtDLL        string `json:"ort_dll"`
	ModelPath     string `json:"model_path"`
	TokenizerPath string `json:"tokenizer_path"`
	MaxSeqLen     int    `json:"max_seq_len"`
}

func (c *Config) ApplyDefaults() {
	if c.MaxSeqLen <= 0 {
		c.MaxSeqLen = 64
	}
}

// Encoder runs the name model. A single Encoder owns one ORT session;
// Encode is serialized with a mutex because session runs share state.
type Encoder struct {
	mu      sync.Mutex
	cfg     Config
	tk      *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
}

var ortInitOnce sync.Once
var ortInitErr error

// Init loads the tokenizer and opens the ONNX session.
func (e *Encoder) Init(cfg Config) error {
	cfg.ApplyDefaults()
	e.cfg = cfg
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return errors.New("nameml: model and tokenizer paths are required")
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return fmt.Errorf("nameml: load tokenizer: %w", err)
	}
	e.tk = tk

	ortInitOnce.Do(func() {
		if cfg.OrtDLL != "" {
			ort.SetSharedLibraryPath(cfg.OrtDLL)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	if ortInitErr != nil {
		return fmt.Errorf("nameml: init onnxruntime: %w", ortInitErr)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"}, nil)
	if err != nil {
		return fmt.Errorf("nameml: open session: %w", err)
	}
	e.session = session
	return nil
}

// Close releases the ORT session.
func (e *Encoder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
}

// Encode embeds one name as a unit-norm vector: mean pooling over the
// attended token states, then L2 normalization, so dot product is
// cosine similarity.
func (e *Encoder) Encode(text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, errors.New("nameml: encoder is not initialized")
	}

	en, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("nameml: tokenize: %w", err)
	}
	ids := en.Ids
	mask := en.AttentionMask
	types := en.TypeIds
	if len(ids) > e.cfg.MaxSeqLen {
		ids = ids[:e.cfg.MaxSeqLen]
		mask = mask[:e.cfg.MaxSeqLen]
		types = types[:e.cfg.MaxSeqLen]
	}
	if len(ids) == 0 {
		return nil, errors.New("nameml: empty encoding")
	}

	shape := ort.NewShape(1, int64(len(ids)))
	idsT, err := ort.NewTensor(shape, toInt64(ids))
	if err != nil {
		return nil, err
	}
	defer idsT.Destroy()
	maskT, err := ort.NewTensor(shape, toInt64(mask))
	if err != nil {
		return nil, err
	}
	defer maskT.Destroy()
	typesT, err := ort.NewTensor(shape, toInt64(types))
	if err != nil {
		return nil, err
	}
	defer typesT.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{idsT, maskT, typesT}, outputs); err != nil {
		return nil, fmt.Errorf("nameml: run session: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("nameml: unexpected output tensor type")
	}
	defer out.Destroy()

	dims := out.GetShape()
	if len(dims) != 3 {
		return nil, fmt.Errorf("nameml: unexpected output rank %d", len(dims))
	}
	seq, hidden := int(dims[1]), int(dims[2])
	data := out.GetData()

	vec := make([]float32, hidden)
	attended := 0
	for t := 0; t < seq && t < len(mask); t++ {
		if mask[t] == 0 {
			continue
		}
		attended++
		row := data[t*hidden : (t+1)*hidden]
		for d, v := range row {
			vec[d] += v
		}
	}
	if attended == 0 {
		return nil, errors.New("nameml: no attended tokens")
	}
	inv := 1 / float32(attended)
	var norm float64
	for d := range vec {
		vec[d] *= inv
		norm += float64(vec[d]) * float64(vec[d])
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for d := range vec {
			vec[d] *= scale
		}
	}
	return vec, nil
}

func toInt64(xs []int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = int64(x)
	}
	return out
}
