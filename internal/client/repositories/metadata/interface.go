// Package metadata is a small key/value store on the local cache database.
// The session layer uses it to carry the authenticated session across CLI
// invocations.
package metadata

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
