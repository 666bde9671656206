// Package session owns the forest a user is working on. Every command derives
// a new immutable snapshot and records it for undo and redo.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nodeforest/internal/event"
	"nodeforest/internal/storage"
	"nodeforest/pkg/models"
	"nodeforest/pkg/tree"
)

var ErrNotLoaded = errors.New("no forest loaded")

type Session struct {
	mu      sync.RWMutex
	forest  []*models.Node
	loaded  bool
	source  string
	history *HistoryManager
	events  *event.EventManager
}

// NewSession creates an empty session keeping at most historyLimit revisions.
func NewSession(historyLimit int) *Session {
	return &Session{
		forest:  make([]*models.Node, 0),
		history: NewHistoryManager(historyLimit),
	}
}

// SetEvents makes the session publish its changes on em.
func (s *Session) SetEvents(em *event.EventManager) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = em
}

func (s *Session) publish(t event.EventType, rev Revision) {
	if s.events == nil {
		return
	}
	s.events.Publish(event.Event{
		Type:     t,
		Op:       string(rev.Op),
		Revision: rev.ID.String(),
		Digest:   rev.Digest,
	})
}

// Load replaces the current forest with the records of src and resets the
// history.
func (s *Session) Load(ctx context.Context, src storage.Source) error {
	records, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}
	forest, err := tree.Build(records)
	if err != nil {
		return fmt.Errorf("failed to build forest from %s: %w", src.Name(), err)
	}
	digest, err := tree.Digest(forest)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.forest = forest
	s.loaded = true
	s.source = src.Name()
	s.history.HistoryReset()
	s.history.HistoryAdd(OpLoad, forest, digest)
	rev, _ := s.history.Current()
	s.publish(event.ForestLoaded, rev)
	return nil
}

// Source names where the current forest was loaded from.
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Nodes returns the current snapshot.
func (s *Session) Nodes() []*models.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forest
}

// Rows returns the visible rows, or every row when all is set.
func (s *Session) Rows(all bool) []models.Row {
	forest := s.Nodes()
	if all {
		return tree.FlattenAll(forest)
	}
	return tree.FlattenVisible(forest)
}

// Children returns every child list of the forest, flattened.
func (s *Session) Children() []*models.Node {
	return tree.FlattenChildren(s.Nodes())
}

// Get returns the node with the given id.
func (s *Session) Get(id int) (*models.Node, error) {
	n, ok := tree.Find(s.Nodes(), id)
	if !ok {
		return nil, notFound(id)
	}
	return n, nil
}

// Digest returns the digest of the current snapshot.
func (s *Session) Digest() (string, error) {
	return tree.Digest(s.Nodes())
}

// Select sets the selection of a node and of its whole subtree.
func (s *Session) Select(id int, selected bool) error {
	return s.update(OpSelect, func(forest []*models.Node) ([]*models.Node, error) {
		n, ok := tree.Find(forest, id)
		if !ok {
			return nil, notFound(id)
		}
		updated := n.ShallowCopy()
		updated.State = updated.State.With(models.PropSelected, selected)
		out, _ := tree.PropagateSelection(forest, updated)
		return out, nil
	})
}

func (s *Session) Expand(id int) error {
	return s.setProp(OpExpand, id, models.PropExpanded, true)
}

func (s *Session) Collapse(id int) error {
	return s.setProp(OpCollapse, id, models.PropExpanded, false)
}

// SetProp stores a caller-defined state prop on a node.
func (s *Session) SetProp(id int, prop string, value any) error {
	return s.setProp(OpSetProp, id, prop, value)
}

func (s *Session) setProp(op OperationType, id int, prop string, value any) error {
	return s.update(op, func(forest []*models.Node) ([]*models.Node, error) {
		out, found := tree.SetStateProp(forest, id, prop, value)
		if !found {
			return nil, notFound(id)
		}
		return out, nil
	})
}

// Add appends a new node under parentID, or at the top level when parentID
// is an empty reference, and returns the new node's id.
func (s *Session) Add(parentID int, content string, extra map[string]string) (int, error) {
	var id int
	err := s.update(OpAdd, func(forest []*models.Node) ([]*models.Node, error) {
		id = nextID(forest)
		n := models.NewNode(id, parentID, content)
		for k, v := range extra {
			n.Extra[k] = v
		}

		if models.IsEmptyRef(parentID) {
			return tree.AppendRecord(forest, n), nil
		}
		out, found := tree.AddChild(forest, parentID, n)
		if !found {
			return nil, notFound(parentID)
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces the content of a node and merges extra into its
// attributes. An empty value removes the attribute.
func (s *Session) Update(id int, content string, extra map[string]string) error {
	return s.update(OpUpdate, func(forest []*models.Node) ([]*models.Node, error) {
		n, ok := tree.Find(forest, id)
		if !ok {
			return nil, notFound(id)
		}
		updated := n.ShallowCopy()
		updated.Content = content
		updated.Extra = make(map[string]string, len(n.Extra)+len(extra))
		for k, v := range n.Extra {
			updated.Extra[k] = v
		}
		for k, v := range extra {
			if v == "" {
				delete(updated.Extra, k)
				continue
			}
			updated.Extra[k] = v
		}
		out, _ := tree.Replace(forest, id, updated)
		return out, nil
	})
}

// Delete removes a node and its subtree.
func (s *Session) Delete(id int) error {
	return s.update(OpDelete, func(forest []*models.Node) ([]*models.Node, error) {
		out, found := tree.Delete(forest, id)
		if !found {
			return nil, notFound(id)
		}
		return out, nil
	})
}

// Move re-parents a node and its subtree.
func (s *Session) Move(id, parentID int) error {
	return s.update(OpMove, func(forest []*models.Node) ([]*models.Node, error) {
		return tree.Move(forest, id, parentID)
	})
}

// Undo restores the snapshot before the last change.
func (s *Session) Undo() (Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rev, err := s.history.Undo()
	if err != nil {
		return Revision{}, err
	}
	s.forest = rev.Forest
	s.publish(event.RevisionRestored, rev)
	return rev, nil
}

// Redo re-applies the change undone last.
func (s *Session) Redo() (Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rev, err := s.history.Redo()
	if err != nil {
		return Revision{}, err
	}
	s.forest = rev.Forest
	s.publish(event.RevisionRestored, rev)
	return rev, nil
}

// History returns the recorded revisions, oldest first, and the index of the
// current one.
func (s *Session) History() ([]Revision, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Revisions()
}

// update runs fn against the current snapshot and commits its result. A
// result that does not change the digest leaves the history untouched.
func (s *Session) update(op OperationType, fn func([]*models.Node) ([]*models.Node, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}

	out, err := fn(s.forest)
	if err != nil {
		return err
	}
	digest, err := tree.Digest(out)
	if err != nil {
		return fmt.Errorf("refusing %s: %w", op, err)
	}

	s.forest = out
	if s.history.HistoryAdd(op, out, digest) {
		rev, _ := s.history.Current()
		s.publish(event.ForestChanged, rev)
	}
	return nil
}

func nextID(forest []*models.Node) int {
	maxID := 0
	for _, row := range tree.FlattenAll(forest) {
		if row.Node.ID > maxID {
			maxID = row.Node.ID
		}
	}
	return maxID + 1
}

func notFound(id int) error {
	return fmt.Errorf("node %d: %w", id, tree.ErrNodeNotFound)
}
