package cdc_emitter

import (
	"encoding/json"
	"github.com/google/uuid"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
	"time"
)

// Event is one mutation in the change feed.
type Event struct {
	ID        uuid.UUID            `json:"id"`
	Operation litetable.Operation  `json:"operation"`
	Keyspace  string               `json:"keyspace"`
	RowKey    string               `json:"key"`
	Path      litetable.ColumnPath `json:"path"`
	Cells     []litetable.Cell     `json:"cells,omitempty"`
	// Timestamp is the delete cutoff of a delete event; zero means the time of the delete.
	Timestamp int64     `json:"timestamp,omitempty"`
	EmittedAt time.Time `json:"emittedAt"`
}

// Emit queues an event for delivery. It never blocks: when the buffer is full the event is
// dropped and a warning is logged.
func (m *Manager) Emit(e *Event) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EmittedAt.IsZero() {
		e.EmittedAt = time.Now().UTC()
	}

	select {
	case m.emitChan <- e:
	default:
		log.Warn().Str("event", e.ID.String()).Msg("CDC buffer full, event dropped")
	}
}

// raiseCDCEvent will emit the CDC event to all connected clients.
func (m *Manager) raiseCDCEvent(e *Event) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal CDC event")
		return
	}

	// Add newline for message framing
	message := append(data, '\n')

	// no new clients while writing
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	for client := range m.clients {
		// Non-blocking write with short timeout
		_ = client.SetWriteDeadline(time.Now().Add(100 * time.Millisecond))
		if _, err = client.Write(message); err != nil {
			_ = client.Close()
			delete(m.clients, client)
		}
	}
}
