// Package event handles notification of forest changes without direct dependency
package event

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

type EventType int

const (
	ForestLoaded EventType = iota
	ForestChanged
	RevisionRestored
)

func (t EventType) String() string {
	switch t {
	case ForestLoaded:
		return "ForestLoaded"
	case ForestChanged:
		return "ForestChanged"
	case RevisionRestored:
		return "RevisionRestored"
	default:
		return "Unknown"
	}
}

type Event struct {
	Type     EventType
	Op       string
	Revision string
	Digest   string
}

type EventHandler func(Event)

type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	wg          sync.WaitGroup
}

func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
	}
}

func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish runs every handler of the event's type on its own goroutine. A
// panicking handler is logged and does not affect the others.
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	for _, handler := range em.subscribers[event.Type] {
		em.wg.Add(1)
		go func(h EventHandler) {
			defer em.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.WithField("event", event.Type).Errorf("panic in event handler: %v", r)
				}
			}()
			h(event)
		}(handler)
	}
}

// Wait blocks until every handler started so far has returned.
func (em *EventManager) Wait() {
	em.wg.Wait()
}
