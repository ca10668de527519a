package nameml

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// diskCache persists name vectors under a directory, one little-endian
// float32 file per name keyed by a hash of the name and model, so
// embeddings survive across runs.
type diskCache struct {
	dir     string
	modelID string
}

func newDiskCache(dir, modelID string) (*diskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("nameml: cache dir: %w", err)
	}
	return &diskCache{dir: dir, modelID: modelID}, nil
}

func (c *diskCache) key(name string) string {
	h := sha1.Sum([]byte(name + "|" + c.modelID))
	return hex.EncodeToString(h[:])
}

func (c *diskCache) load(name string) ([]float32, bool, error) {
	path := filepath.Join(c.dir, c.key(name)+".bin")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(data) < 4 {
		return nil, false, fmt.Errorf("nameml: cache file broken: %s", path)
	}
	length := binary.LittleEndian.Uint32(data[:4])
	need := int(length) * 4
	if len(data) < 4+need {
		return nil, false, fmt.Errorf("nameml: cache truncated: %s", path)
	}
	vec := make([]float32, int(length))
	if err := binary.Read(bytes.NewReader(data[4:4+need]), binary.LittleEndian, vec); err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

func (c *diskCache) save(name string, v []float32) error {
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(v)))
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		return err
	}
	path := filepath.Join(c.dir, c.key(name)+".bin")
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
