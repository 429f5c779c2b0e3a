// Package metadata caches immutable asset parameters so repeated inventory
// refreshes do not re-query the node for every asset.
package metadata

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/firepit-wallet/firepit/internal/log"
	"github.com/firepit-wallet/firepit/internal/rpcclient"
	"github.com/firepit-wallet/firepit/internal/storage"
)

// keyPrefix namespaces cache entries within the database.
var keyPrefix = []byte("am:")

// Source resolves asset parameters by ID; satisfied by the RPC client.
type Source interface {
	GetAssetParams(ctx context.Context, assetID uint64) (*rpcclient.AssetParams, error)
}

// Cache is a read-through asset-parameters cache. Asset parameters are
// immutable after creation, so entries never expire; a deleted asset keeps
// returning its last-known parameters, which is the desired display
// behavior anyway.
type Cache struct {
	source Source
	db     storage.DB
}

// New creates a cache over the given source and database.
func New(source Source, db storage.DB) *Cache {
	return &Cache{source: source, db: db}
}

func key(assetID uint64) []byte {
	k := make([]byte, len(keyPrefix)+8)
	copy(k, keyPrefix)
	binary.BigEndian.PutUint64(k[len(keyPrefix):], assetID)
	return k
}

// GetAssetParams returns cached parameters when present, otherwise fetches
// from the source and stores the result. Cache write failures are logged
// and otherwise ignored; the lookup result still flows to the caller.
func (c *Cache) GetAssetParams(ctx context.Context, assetID uint64) (*rpcclient.AssetParams, error) {
	raw, err := c.db.Get(key(assetID))
	if err == nil {
		var params rpcclient.AssetParams
		if err := json.Unmarshal(raw, &params); err == nil {
			return &params, nil
		}
		// Corrupt entry: drop it and fall through to the source.
		_ = c.db.Delete(key(assetID))
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Cache.Warn().Uint64("asset_id", assetID).Err(err).Msg("cache read failed")
	}

	params, err := c.source.GetAssetParams(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(params); err == nil {
		if err := c.db.Put(key(assetID), raw); err != nil {
			log.Cache.Warn().Uint64("asset_id", assetID).Err(err).Msg("cache write failed")
		}
	}
	return params, nil
}

// Purge removes every cached entry.
func (c *Cache) Purge() error {
	var keys [][]byte
	err := c.db.ForEach(keyPrefix, func(k, _ []byte) error {
		keys = append(keys, k)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan cache: %w", err)
	}
	for _, k := range keys {
		if err := c.db.Delete(k); err != nil {
			return fmt.Errorf("purge cache: %w", err)
		}
	}
	return nil
}
