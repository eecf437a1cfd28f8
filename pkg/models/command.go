// Package models defines the shared data model and wire formats for railyard.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownAction = errors.New("unknown command action")
	ErrSpeedRange    = errors.New("speed out of range [0,100]")
	ErrMissingSpeed  = errors.New("setSpeed command requires a speed")
	ErrNotObject     = errors.New("payload is not a JSON object")
)

// Action identifies a command kind. The set is closed: payloads carrying
// any other action string are rejected at parse time.
type Action string

const (
	ActionStart         Action = "start"
	ActionStop          Action = "stop"
	ActionSetSpeed      Action = "setSpeed"
	ActionForward       Action = "forward"
	ActionReverse       Action = "reverse"
	ActionEmergencyStop Action = "emergencyStop"
)

// Direction of travel for a train.
type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionReverse Direction = "reverse"
)

// Invert returns the opposite direction.
func (d Direction) Invert() Direction {
	if d == DirectionReverse {
		return DirectionForward
	}

	return DirectionReverse
}

// Command is the wire format published to trains/{id}/commands.
// Commands are absolute operations, not deltas, so duplicate delivery
// under at-least-once semantics is harmless.
type Command struct {
	Action    Action    `json:"action"`
	Speed     *int      `json:"speed,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// SetSpeed builds a setSpeed command for the given target.
func SetSpeed(speed int) Command {
	return Command{Action: ActionSetSpeed, Speed: &speed}
}

// Validate checks the action against the closed enum and the speed range.
func (c *Command) Validate() error {
	switch c.Action {
	case ActionStart, ActionStop, ActionForward, ActionReverse, ActionEmergencyStop:
		return nil
	case ActionSetSpeed:
		if c.Speed == nil {
			return ErrMissingSpeed
		}

		if *c.Speed < 0 || *c.Speed > 100 {
			return fmt.Errorf("%w: %d", ErrSpeedRange, *c.Speed)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, c.Action)
	}
}

// ParseCommand decodes and validates a command payload.
func ParseCommand(payload []byte) (*Command, error) {
	var probe interface{}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse command JSON: %w", err)
	}

	if _, ok := probe.(map[string]interface{}); !ok {
		return nil, ErrNotObject
	}

	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return nil, fmt.Errorf("failed to parse command JSON: %w", err)
	}

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return &cmd, nil
}

// Direction returns the direction a forward/reverse command selects,
// or false for every other action.
func (c *Command) Direction() (Direction, bool) {
	switch c.Action {
	case ActionForward:
		return DirectionForward, true
	case ActionReverse:
		return DirectionReverse, true
	default:
		return "", false
	}
}
