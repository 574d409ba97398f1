package commons_abc

import (
	"context"
	"sync"

	solanago "github.com/gagliardetto/solana-go"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

// MemoryStore keeps encoded curve records in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[solanago.PublicKey][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[solanago.PublicKey][]byte)}
}

func (s *MemoryStore) LoadCurve(_ context.Context, curve solanago.PublicKey) (*CurveConfig, error) {
	s.mu.RLock()
	data, ok := s.records[curve]
	s.mu.RUnlock()
	if !ok {
		return nil, abc.ErrCurveNotFound
	}
	return DecodeCurveConfig(data)
}

func (s *MemoryStore) StoreCurve(_ context.Context, curve solanago.PublicKey, config *CurveConfig) error {
	data, err := EncodeCurveConfig(config)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[curve] = data
	s.mu.Unlock()
	return nil
}

// Raw returns the persisted bytes of a curve.
func (s *MemoryStore) Raw(curve solanago.PublicKey) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[curve]
	return data, ok
}
