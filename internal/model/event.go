// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// EventMessage is a single race control message as reported during a session.
// DriverNumber is the structured racing number when the timing feed supplies
// one; it is the preferred attribution source. Numerals inside RawText are
// never treated as driver identifiers unless they appear in the anchored
// "CAR N (ABC)" form.
type EventMessage struct {
	SessionID    string `json:"session_id"`
	RawText      string `json:"raw_text"`
	DriverNumber *int   `json:"driver_number,omitempty"`
}

// Validate checks the message is structurally sound. A message with no text is
// malformed and fatal to that record only.
func (m EventMessage) Validate() error {
	if m.SessionID == "" {
		return fmt.Errorf("event message: missing session id")
	}
	if m.RawText == "" {
		return fmt.Errorf("event message in session %s: empty text", m.SessionID)
	}
	return nil
}
