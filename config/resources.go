package config

import (
	"context"
	"fmt"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/bandbook/resources/file"
	"github.com/dekarrin/bandbook/resources/pack"
	"github.com/dekarrin/bandbook/resources/s3"
	"github.com/dekarrin/bandbook/resources/sqlite"
)

// Open performs all logic needed to reach the configured resources and returns
// a provider for them. If the returned provider is also an io.Closer, the
// caller must Close it once it is done reading from it.
//
// File, pack, and S3 resources are read completely by Open; SQLite resources
// are read when the provider is queried.
func (r Resources) Open(ctx context.Context) (bandbook.ResourceProvider, error) {
	switch r.Type {
	case ResourcesFile:
		return file.Load(r.Path)
	case ResourcesPack:
		return pack.Load(r.Path)
	case ResourcesSQLite:
		db, err := sqlite.Open(r.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	case ResourcesS3:
		return s3.Fetch(ctx, r.S3)
	default:
		return nil, fmt.Errorf("unknown resource type %q", r.Type)
	}
}
