package amqp

import (
	"encoding/json"
	"time"
)

// ReportCreatedMessage announces a freshly stored report. It carries only
// the id, the worker fetches the full report from the database.
type ReportCreatedMessage struct {
	ReportID  int64     `json:"report_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReportCreatedMessage creates a message for the given report id.
func NewReportCreatedMessage(reportID int64) *ReportCreatedMessage {
	return &ReportCreatedMessage{
		ReportID:  reportID,
		Timestamp: time.Now(),
	}
}

// ToJSON serializes the message to JSON bytes.
func (m *ReportCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportCreatedMessageFromJSON deserializes a message from JSON bytes.
func ReportCreatedMessageFromJSON(data []byte) (*ReportCreatedMessage, error) {
	var msg ReportCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
