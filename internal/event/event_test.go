package event

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	em := NewEventManager()

	var changed, loaded atomic.Int32
	em.Subscribe(ForestChanged, func(e Event) {
		assert.Equal(t, "Delete", e.Op)
		changed.Add(1)
	})
	em.Subscribe(ForestChanged, func(Event) { changed.Add(1) })
	em.Subscribe(ForestLoaded, func(Event) { loaded.Add(1) })

	em.Publish(Event{Type: ForestChanged, Op: "Delete"})
	em.Wait()

	require.EqualValues(t, 2, changed.Load())
	require.Zero(t, loaded.Load())
}

func TestPublishRecoversPanics(t *testing.T) {
	em := NewEventManager()

	var ran atomic.Bool
	em.Subscribe(RevisionRestored, func(Event) { panic("boom") })
	em.Subscribe(RevisionRestored, func(Event) { ran.Store(true) })

	em.Publish(Event{Type: RevisionRestored})
	em.Wait()
	require.True(t, ran.Load())
}

func TestEventTypeString(t *testing.T) {
	require.Equal(t, "ForestLoaded", ForestLoaded.String())
	require.Equal(t, "Unknown", EventType(42).String())
}
