package models

import (
	"encoding/json"
	"time"
)

// Controller is a physical device hosting one or more trains. Identity is
// an opaque UUID. first_seen is set once and never changes; last_seen and
// the capability fields are runtime state owned by the telemetry ingestor.
type Controller struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Enabled     bool      `json:"enabled"`
	FirstSeen   time.Time `json:"first_seen,omitempty"`
	LastSeen    time.Time `json:"last_seen,omitempty"`
	Platform    string    `json:"platform,omitempty"`
	Version     string    `json:"version,omitempty"`
	MemoryMB    int       `json:"memory_mb,omitempty"`
	CPUCount    int       `json:"cpu_count,omitempty"`
	ConfigHash  string    `json:"config_hash,omitempty"`
}

// Train is a controllable unit owned by exactly one controller for its
// lifetime. ControllerID is immutable after creation.
type Train struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Model            string          `json:"model,omitempty"`
	ControllerID     string          `json:"controller_id"`
	PluginName       string          `json:"plugin_name"`
	PluginConfig     json.RawMessage `json:"plugin_config,omitempty"`
	InvertDirections bool            `json:"invert_directions"`
}

// Plugin describes a motor driver type. Read-only at runtime; the schema
// documents valid plugin configuration for trains using this driver.
type Plugin struct {
	Name         string          `json:"name"`
	HumanName    string          `json:"human_name"`
	Version      string          `json:"version"`
	ConfigSchema json.RawMessage `json:"config_schema,omitempty"`
}

// ControllerUpdate carries the operator-editable controller fields.
// Nil pointers leave the stored value untouched (field-level merge).
type ControllerUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// TrainUpdate carries the operator-editable train fields.
type TrainUpdate struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	InvertDirections *bool   `json:"invert_directions,omitempty"`
}
