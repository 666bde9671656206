// Package storage reads flat node records from local files and databases.
// Records are returned in flat form; building the forest is left to the caller.
package storage

import (
	"context"
	"fmt"

	"nodeforest/internal/config"
	"nodeforest/pkg/models"
)

// Source yields the flat record list a forest is built from.
type Source interface {
	Load(ctx context.Context) ([]*models.Node, error)
	Name() string
}

// Closer is implemented by sources that hold an open handle.
type Closer interface {
	Close() error
}

// Open returns the source described by cfg.
func Open(cfg config.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case config.SourceJSON, config.SourceXML:
		return NewFileSource(cfg.Path, cfg.Kind), nil
	case config.SourceSQLite:
		return NewSQLiteSource(cfg.Path, cfg.Table)
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", cfg.Kind)
	}
}

// normalise gives every record a non-nil Extra map and an empty child list.
func normalise(nodes []*models.Node) []*models.Node {
	for _, n := range nodes {
		if n.Extra == nil {
			n.Extra = make(map[string]string)
		}
		n.Children = make([]*models.Node, 0)
	}
	return nodes
}
