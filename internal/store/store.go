// Package store persists enrichment artifacts: structured text documents and
// raw attachment blobs, grouped into named containers.
package store

import (
	"context"
	"time"
)

// Document is one stored artifact.
type Document struct {
	ID        string    `bson:"_id" json:"id"`
	Container string    `bson:"container" json:"container"`
	Name      string    `bson:"name" json:"name"`
	Kind      string    `bson:"kind" json:"kind"`
	Size      int64     `bson:"size" json:"size"`
	Content   []byte    `bson:"content" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Store is a container-scoped document store. Put never overwrites: a name
// collision within a container gets underscore suffixes until unique.
type Store interface {
	Put(ctx context.Context, container, name string, content []byte, kind string) (*Document, error)
	List(ctx context.Context, container string) ([]Document, error)
	Close(ctx context.Context) error
	Name() string
}
