package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	errMissingBroker   = errors.New("broker_url is required")
	errMissingDBPath   = errors.New("db_path is required")
	errMissingID       = errors.New("controller_id is required")
	errNoTrains        = errors.New("either trains or core_url is required")
	errBadGracePeriod  = errors.New("grace_period must be positive")
	errBadRampDuration = errors.New("ramp_duration must be positive")
)

// Duration is a time.Duration that unmarshals from either a duration
// string ("30s") or a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// CoreConfig configures the supervisory core service.
type CoreConfig struct {
	ListenAddr              string          `json:"listen_addr"`  // e.g., :8080
	BrokerURL               string          `json:"broker_url"`   // e.g., tcp://mqtt:1883
	DBPath                  string          `json:"db_path"`      // SQLite database file
	ManifestPath            string          `json:"manifest_path"`
	AllowUnknownControllers bool            `json:"allow_unknown_controllers"`
	OfflineCheckInterval    Duration        `json:"offline_check_interval,omitempty"`
	Webhooks                []WebhookConfig `json:"webhooks,omitempty"`
}

// WebhookConfig configures an offline-controller alert webhook.
type WebhookConfig struct {
	Enabled  bool     `json:"enabled"`
	URL      string   `json:"url"`
	Cooldown Duration `json:"cooldown"`
	Template string   `json:"template,omitempty"`
	Headers  []Header `json:"headers,omitempty"`
}

// Header represents a custom HTTP header.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (c *CoreConfig) Validate() error {
	if c.BrokerURL == "" {
		return errMissingBroker
	}

	if c.DBPath == "" {
		return errMissingDBPath
	}

	if c.OfflineCheckInterval == 0 {
		c.OfflineCheckInterval = Duration(30 * time.Second)
	}

	return nil
}

// TrainAssignment binds a train owned by this controller to its motor
// driver plugin.
type TrainAssignment struct {
	TrainID          string          `json:"train_id"`
	PluginName       string          `json:"plugin_name"`
	PluginConfig     json.RawMessage `json:"plugin_config,omitempty"`
	InvertDirections bool            `json:"invert_directions,omitempty"`
	DefaultSpeed     int             `json:"default_speed,omitempty"`
}

// EdgeConfig configures an edge controller instance. Trains may be
// listed locally or, when core_url is set and the list is empty, pulled
// from the core's fleet API at startup.
type EdgeConfig struct {
	ControllerID      string            `json:"controller_id"`
	BrokerURL         string            `json:"broker_url"`
	CoreURL           string            `json:"core_url,omitempty"`
	Trains            []TrainAssignment `json:"trains,omitempty"`
	HeartbeatInterval Duration          `json:"heartbeat_interval,omitempty"`
	StatusInterval    Duration          `json:"status_interval,omitempty"`
	GracePeriod       Duration          `json:"grace_period,omitempty"` // disconnect fail-safe
	RampDuration      Duration          `json:"ramp_duration,omitempty"`
}

func (c *EdgeConfig) Validate() error {
	if c.ControllerID == "" {
		return errMissingID
	}

	if c.BrokerURL == "" {
		return errMissingBroker
	}

	if len(c.Trains) == 0 && c.CoreURL == "" {
		return errNoTrains
	}

	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = Duration(10 * time.Second)
	}

	if c.StatusInterval == 0 {
		c.StatusInterval = Duration(5 * time.Second)
	}

	if c.GracePeriod == 0 {
		c.GracePeriod = Duration(15 * time.Second)
	} else if c.GracePeriod < 0 {
		return errBadGracePeriod
	}

	if c.RampDuration == 0 {
		c.RampDuration = Duration(3 * time.Second)
	} else if c.RampDuration < 0 {
		return errBadRampDuration
	}

	return nil
}
