package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ProtocolVersion is the only version the server accepts.
const ProtocolVersion = "1"

// Message types.
const (
	TypeHello   = "hello"
	TypeWelcome = "welcome"
	TypeReset   = "reset"
	TypeStep    = "step"
	TypeObs     = "obs"
	TypeError   = "error"
)

// ErrProtocol is wrapped by every error caused by a malformed or
// out-of-order client message.
var ErrProtocol = errors.New("bridge: protocol error")

// Request is any client message. Action is only read for step.
type Request struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
	Action          []int  `json:"action,omitempty"`
}

// Welcome answers hello.
type Welcome struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	SessionID       string   `json:"session_id"`
	ObservationSize int      `json:"observation_size"`
	Schema          []string `json:"schema"`
	Branches        []int    `json:"branches"`
}

// Obs answers reset and step.
type Obs struct {
	Type        string    `json:"type"`
	EpisodeID   string    `json:"episode_id"`
	Tick        int       `json:"tick"`
	Observation []float64 `json:"observation"`
	Reward      float64   `json:"reward"`
	Done        bool      `json:"done"`
	Outcome     string    `json:"outcome,omitempty"`
	Cause       string    `json:"cause,omitempty"`
}

// Error reports a rejected message. The session stays open.
type Error struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func decodeRequest(b []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(b, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	if req.Type == "" {
		return Request{}, fmt.Errorf("%w: missing type", ErrProtocol)
	}
	return req, nil
}
