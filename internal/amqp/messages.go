package amqp

import (
	"encoding/json"
	"time"
)

// ReceiptMessage carries a rendered receipt to an out-of-process mailer.
type ReceiptMessage struct {
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Body       string    `json:"body"`
	Total      string    `json:"total"`
	EntryCount int       `json:"entry_count"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewReceiptMessage(from, to, body, total string, entryCount int) *ReceiptMessage {
	return &ReceiptMessage{
		From:       from,
		To:         to,
		Body:       body,
		Total:      total,
		EntryCount: entryCount,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReceiptMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReceiptMessageFromJSON creates a message from JSON bytes
func ReceiptMessageFromJSON(data []byte) (*ReceiptMessage, error) {
	var msg ReceiptMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
