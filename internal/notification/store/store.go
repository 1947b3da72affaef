// Package store persists notification blobs as raw JSON under fixed
// per-owner keys. Backends know nothing about the blob contents.
package store

import (
	"context"

	id "motorhub/pkg/domain"
)

const keyPrefix = "notifications/"

// KVStore is a minimal key-value store. Get returns sentinel.ErrNotFound for
// a missing key; Delete of a missing key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LogKey is where owner's notification log lives.
func LogKey(owner id.UserID) string {
	return keyPrefix + owner.String() + "/log"
}

// PermissionKey is where owner's permission record lives.
func PermissionKey(owner id.UserID) string {
	return keyPrefix + owner.String() + "/permission"
}
