// Package draft persists in-progress diagnostic snapshots in a scoped
// key-value store so a wizard session can resume after a reload.
package draft

import (
	"context"
	"strings"
)

// keyPrefix scopes draft keys to diagnostics.
const keyPrefix = "diagnostic_"

const stepSuffix = ":step"

// Store is a string key-value store for drafts. Get reports a missing key
// with ok=false rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

// Key returns the draft key for a client.
func Key(clientID string) string {
	return keyPrefix + clientID
}

// StepKey returns the key holding the wizard step for a client's draft.
func StepKey(clientID string) string {
	return Key(clientID) + stepSuffix
}

// ClientIDs extracts the client IDs from a list of store keys, skipping step
// keys and anything that is not a draft key.
func ClientIDs(keys []string) []string {
	ids := []string{}
	for _, k := range keys {
		if !strings.HasPrefix(k, keyPrefix) || strings.HasSuffix(k, stepSuffix) {
			continue
		}
		ids = append(ids, strings.TrimPrefix(k, keyPrefix))
	}
	return ids
}
