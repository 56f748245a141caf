package notify

import (
	"encoding/json"
	"time"

	"offersync/internal/core"
)

// SheetSyncedMessage announces that a destination table was fully
// rewritten. Consumers re-read the sheet themselves; the message only
// says which one changed and how big it is now.
type SheetSyncedMessage struct {
	Sheet     string    `json:"sheet"`
	DBSheet   string    `json:"db_sheet"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSheetSyncedMessage(o core.SyncOutcome) *SheetSyncedMessage {
	return &SheetSyncedMessage{
		Sheet:     o.Sheet,
		DBSheet:   o.DBSheet,
		Rows:      o.Rows,
		Cols:      o.Cols,
		StartedAt: o.StartedAt,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SheetSyncedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SheetSyncedMessageFromJSON creates a message from JSON bytes
func SheetSyncedMessageFromJSON(data []byte) (*SheetSyncedMessage, error) {
	var msg SheetSyncedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
