package tree

import (
	"fmt"

	"nodeforest/pkg/models"
)

// Validate checks a forest that was not produced by Build: every id must be
// unique and no node may appear among its own descendants.
func Validate(forest []*models.Node) error {
	seen := make(map[int]struct{})
	onPath := make(map[*models.Node]struct{})

	var walk func(nodes []*models.Node, depth int) error
	walk = func(nodes []*models.Node, depth int) error {
		if depth >= MaxDepth {
			return &CycleError{Keys: []any{fmt.Sprintf("depth>%d", MaxDepth)}}
		}
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if _, loop := onPath[n]; loop {
				return &CycleError{Keys: []any{n.ID}}
			}
			if _, dup := seen[n.ID]; dup {
				return &duplicateKeyError{key: n.ID}
			}
			seen[n.ID] = struct{}{}

			onPath[n] = struct{}{}
			if err := walk(n.Children, depth+1); err != nil {
				return err
			}
			delete(onPath, n)
		}
		return nil
	}
	return walk(forest, 0)
}
