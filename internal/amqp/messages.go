package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the ledger exchange.
const (
	KindTransactionRecorded = "transaction_recorded"
	KindBudgetSet           = "budget_set"
)

// LedgerEventMessage is a lightweight change notification. It carries only the
// identifier and category; consumers fetch the full record from the store.
type LedgerEventMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id,omitempty"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage builds the event published after a transaction
// is appended to the ledger.
func NewTransactionRecordedMessage(id string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Kind:      KindTransactionRecorded,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// NewBudgetSetMessage builds the event published after a budget upsert.
func NewBudgetSetMessage(category string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Kind:      KindBudgetSet,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
