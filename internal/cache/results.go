package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/recipe"
	"github.com/rshade/ecofocus/internal/simulator"
)

// Key identifies the result of q against a catalog, given as its
// content digest (catalog.Snapshot.Digest).
func Key(catalogDigest string, q recipe.Query) (string, error) {
	qk, err := q.Key()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(catalogDigest + "\x00" + qk))
	return hex.EncodeToString(sum[:]), nil
}

// Results stores simulation results in a FileStore.
type Results struct {
	store *FileStore
}

// NewResults wraps store.
func NewResults(store *FileStore) *Results {
	return &Results{store: store}
}

// Get returns the cached result under key. Misses, expired entries, and
// unreadable entries all report false; only the latter are logged.
func (c *Results) Get(ctx context.Context, key string) (*simulator.Result, bool) {
	entry, err := c.store.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrExpired) && !errors.Is(err, ErrDisabled) {
			logging.FromContext(ctx).Warn().Ctx(ctx).
				Str("component", "cache").
				Err(err).
				Str("key", key).
				Msg("ignoring unreadable cache entry")
		}
		return nil, false
	}
	var res simulator.Result
	if err = json.Unmarshal(entry.Data, &res); err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("component", "cache").
			Err(err).
			Str("key", key).
			Msg("ignoring undecodable cached result")
		return nil, false
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "cache").
		Str("key", key).
		Msg("cache hit")
	return &res, true
}

// Put stores res under key. A disabled store is not an error.
func (c *Results) Put(key string, res *simulator.Result) error {
	if !c.store.Enabled() {
		return nil
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.store.Set(key, raw)
}
