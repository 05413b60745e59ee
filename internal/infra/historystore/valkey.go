package historystore

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

// ValkeyStore keeps recommendation history in a Valkey hash of
// item id → RFC3339 timestamp.
type ValkeyStore struct {
	client valkey.Client
	key    string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, key string) *ValkeyStore {
	if key == "" {
		key = "outfit:history"
	}
	return &ValkeyStore{client: client, key: key}
}

// Get implements outfit.HistoryStore.
func (s *ValkeyStore) Get(ctx context.Context, itemID string) (time.Time, bool, error) {
	cmd := s.client.B().Hget().Key(s.key).Field(itemID).Build()
	raw, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

// Put overwrites the stored timestamp unless the existing one is newer.
func (s *ValkeyStore) Put(ctx context.Context, itemID string, ts time.Time) error {
	existing, ok, err := s.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if ok && existing.After(ts) {
		return nil
	}
	cmd := s.client.B().Hset().Key(s.key).
		FieldValue().FieldValue(itemID, ts.UTC().Format(time.RFC3339)).
		Build()
	return s.client.Do(ctx, cmd).Error()
}

// LoadAll implements outfit.HistoryStore.
func (s *ValkeyStore) LoadAll(ctx context.Context) (map[string]time.Time, error) {
	cmd := s.client.B().Hgetall().Key(s.key).Build()
	entries, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return map[string]time.Time{}, nil
		}
		return nil, err
	}
	out := make(map[string]time.Time, len(entries))
	for id, stamp := range entries {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			continue
		}
		out[id] = ts
	}
	return out, nil
}

var _ outfit.HistoryStore = (*ValkeyStore)(nil)
