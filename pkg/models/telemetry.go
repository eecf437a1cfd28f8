package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var errMissingTrainID = errors.New("status payload missing train_id")

// TrainStatus is a telemetry snapshot for a single train. One row per
// train, overwritten in place; there is no history.
type TrainStatus struct {
	TrainID   string    `json:"train_id"`
	Speed     int       `json:"speed"`
	Voltage   float64   `json:"voltage"`
	Current   float64   `json:"current"`
	Position  string    `json:"position,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate rejects snapshots with an out-of-range speed. Out-of-range
// telemetry is dropped entirely, never clamped.
func (s *TrainStatus) Validate() error {
	if s.TrainID == "" {
		return errMissingTrainID
	}

	if s.Speed < 0 || s.Speed > 100 {
		return fmt.Errorf("%w: %d", ErrSpeedRange, s.Speed)
	}

	return nil
}

// ParseTrainStatus decodes and validates a status payload.
func ParseTrainStatus(payload []byte) (*TrainStatus, error) {
	var status TrainStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status JSON: %w", err)
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &status, nil
}

// Heartbeat is the controller-level liveness signal, distinct from
// per-train telemetry. Capability fields are optional; controllers may
// send partial updates.
type Heartbeat struct {
	ControllerID string    `json:"controller_id"`
	Platform     string    `json:"platform,omitempty"`
	Version      string    `json:"version,omitempty"`
	MemoryMB     int       `json:"memory_mb,omitempty"`
	CPUCount     int       `json:"cpu_count,omitempty"`
	ConfigHash   string    `json:"config_hash,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ParseHeartbeat decodes a heartbeat payload.
func ParseHeartbeat(payload []byte) (*Heartbeat, error) {
	var hb Heartbeat
	if err := json.Unmarshal(payload, &hb); err != nil {
		return nil, fmt.Errorf("failed to parse heartbeat JSON: %w", err)
	}

	return &hb, nil
}
