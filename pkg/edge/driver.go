package edge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/railyardhq/railyard/pkg/models"
)

// Telemetry is a point-in-time electrical reading from a motor driver.
type Telemetry struct {
	Voltage  float64
	Current  float64
	Position float64
}

// MotorDriver abstracts the hardware layer that actually moves a train.
// Implementations receive physical directions; logical-to-physical
// inversion happens before calls reach them.
type MotorDriver interface {
	SetSpeed(speed int) error
	SetDirection(direction models.Direction) error
	Stop() error
	Telemetry() Telemetry
	Close() error
}

// DriverFactory builds a driver for one train from its plugin config.
type DriverFactory func(ctx context.Context, trainID string, cfg json.RawMessage) (MotorDriver, error)

// DriverRegistry defines how to store and retrieve driver factories.
type DriverRegistry interface {
	Register(pluginName string, factory DriverFactory)
	Get(ctx context.Context, pluginName, trainID string, cfg json.RawMessage) (MotorDriver, error)
}

type driverRegistry struct {
	factories map[string]DriverFactory
}

// NewDriverRegistry creates an empty driver registry.
func NewDriverRegistry() DriverRegistry {
	return &driverRegistry{
		factories: make(map[string]DriverFactory),
	}
}

func (r *driverRegistry) Register(pluginName string, factory DriverFactory) {
	r.factories[pluginName] = factory
}

func (r *driverRegistry) Get(ctx context.Context, pluginName, trainID string, cfg json.RawMessage) (MotorDriver, error) {
	f, ok := r.factories[pluginName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, pluginName)
	}

	return f(ctx, trainID, cfg)
}

// DefaultRegistry returns a registry with the built-in drivers.
func DefaultRegistry() DriverRegistry {
	registry := NewDriverRegistry()

	registry.Register("simulated_dc", func(_ context.Context, trainID string, cfg json.RawMessage) (MotorDriver, error) {
		return NewSimulatedDriver(trainID, cfg)
	})

	return registry
}

// invertingDriver flips directions before they reach the wrapped driver,
// for trains wired backwards on the track.
type invertingDriver struct {
	MotorDriver
}

func (d *invertingDriver) SetDirection(direction models.Direction) error {
	return d.MotorDriver.SetDirection(direction.Invert())
}

// InvertDirections wraps a driver so logical forward maps to physical
// reverse and vice versa.
func InvertDirections(driver MotorDriver) MotorDriver {
	return &invertingDriver{MotorDriver: driver}
}

type simulatedDriverConfig struct {
	SupplyVoltage float64 `json:"supply_voltage,omitempty"`
	StallCurrent  float64 `json:"stall_current,omitempty"`
}

// SimulatedDriver models a DC throttle without hardware: voltage scales
// with speed, current follows load, position integrates travel.
type SimulatedDriver struct {
	trainID string
	supply  float64
	stall   float64

	mu        sync.Mutex
	speed     int
	direction models.Direction
	position  float64
	movedAt   time.Time
}

// NewSimulatedDriver creates a simulated DC driver for a train.
func NewSimulatedDriver(trainID string, cfg json.RawMessage) (*SimulatedDriver, error) {
	conf := simulatedDriverConfig{
		SupplyVoltage: 12.0,
		StallCurrent:  1.5,
	}

	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &conf); err != nil {
			return nil, fmt.Errorf("invalid simulated driver config for %s: %w", trainID, err)
		}
	}

	return &SimulatedDriver{
		trainID:   trainID,
		supply:    conf.SupplyVoltage,
		stall:     conf.StallCurrent,
		direction: models.DirectionForward,
		movedAt:   time.Now(),
	}, nil
}

func (d *SimulatedDriver) SetSpeed(speed int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.advance(time.Now())
	d.speed = speed

	return nil
}

func (d *SimulatedDriver) SetDirection(direction models.Direction) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.advance(time.Now())
	d.direction = direction

	return nil
}

func (d *SimulatedDriver) Stop() error {
	return d.SetSpeed(0)
}

func (d *SimulatedDriver) Telemetry() Telemetry {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.advance(time.Now())

	throttle := float64(d.speed) / 100.0

	return Telemetry{
		Voltage:  d.supply * throttle,
		Current:  d.stall * throttle,
		Position: d.position,
	}
}

func (d *SimulatedDriver) Close() error {
	return d.Stop()
}

// advance integrates position since the last call. Caller holds d.mu.
func (d *SimulatedDriver) advance(now time.Time) {
	elapsed := now.Sub(d.movedAt).Seconds()
	d.movedAt = now

	distance := float64(d.speed) / 100.0 * elapsed
	if d.direction == models.DirectionReverse {
		distance = -distance
	}

	d.position += distance
}
