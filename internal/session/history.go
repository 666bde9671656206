package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"nodeforest/pkg/models"
)

// OperationType names the command that produced a revision.
type OperationType string

const (
	OpLoad     OperationType = "Load"
	OpSelect   OperationType = "Select"
	OpExpand   OperationType = "Expand"
	OpCollapse OperationType = "Collapse"
	OpSetProp  OperationType = "SetProp"
	OpAdd      OperationType = "Add"
	OpUpdate   OperationType = "Update"
	OpDelete   OperationType = "Delete"
	OpMove     OperationType = "Move"
)

// Revision is one forest snapshot kept for undo and redo.
type Revision struct {
	ID      uuid.UUID
	Op      OperationType
	Digest  string
	Created time.Time
	Forest  []*models.Node
}

// HistoryManager keeps a bounded, linear list of revisions with a cursor.
// Snapshots are immutable so revisions share unchanged subtrees.
type HistoryManager struct {
	history      []Revision
	historyIndex int
	limit        int
}

func NewHistoryManager(limit int) *HistoryManager {
	if limit < 1 {
		limit = 1
	}
	return &HistoryManager{
		history:      []Revision{},
		historyIndex: -1,
		limit:        limit,
	}
}

// HistoryAdd records forest as the newest revision and drops anything that
// could have been redone. A forest whose digest equals the current revision
// is not recorded and false is returned.
func (hm *HistoryManager) HistoryAdd(op OperationType, forest []*models.Node, digest string) bool {
	if cur, ok := hm.Current(); ok && cur.Digest == digest {
		return false
	}

	rev := Revision{
		ID:      uuid.New(),
		Op:      op,
		Digest:  digest,
		Created: time.Now(),
		Forest:  forest,
	}

	hm.history = append(hm.history[:hm.historyIndex+1], rev)
	if len(hm.history) > hm.limit {
		drop := len(hm.history) - hm.limit
		hm.history = append([]Revision(nil), hm.history[drop:]...)
	}
	hm.historyIndex = len(hm.history) - 1
	return true
}

// HistoryReset clears the history.
func (hm *HistoryManager) HistoryReset() {
	hm.history = []Revision{}
	hm.historyIndex = -1
}

// Current returns the revision under the cursor.
func (hm *HistoryManager) Current() (Revision, bool) {
	if hm.historyIndex < 0 {
		return Revision{}, false
	}
	return hm.history[hm.historyIndex], true
}

// Undo moves the cursor one revision back and returns that revision.
func (hm *HistoryManager) Undo() (Revision, error) {
	if hm.historyIndex <= 0 {
		return Revision{}, fmt.Errorf("no operations to undo")
	}
	hm.historyIndex--
	return hm.history[hm.historyIndex], nil
}

// Redo moves the cursor one revision forward and returns that revision.
func (hm *HistoryManager) Redo() (Revision, error) {
	if hm.historyIndex >= len(hm.history)-1 {
		return Revision{}, fmt.Errorf("no operations to redo")
	}
	hm.historyIndex++
	return hm.history[hm.historyIndex], nil
}

// Revisions returns the recorded revisions, oldest first, and the cursor.
func (hm *HistoryManager) Revisions() ([]Revision, int) {
	out := make([]Revision, len(hm.history))
	copy(out, hm.history)
	return out, hm.historyIndex
}
