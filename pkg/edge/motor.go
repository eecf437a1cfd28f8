package edge

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/railyardhq/railyard/pkg/models"
)

// MotorState is a motor control state.
type MotorState string

const (
	StateStopped MotorState = "stopped"
	StateRamping MotorState = "ramping"
	StateRunning MotorState = "running"
	StateFaulted MotorState = "faulted"
)

// MotorSnapshot is a consistent view of a motor for telemetry.
type MotorSnapshot struct {
	State     MotorState
	Speed     int
	Target    int
	Direction models.Direction
}

// Motor drives one train's throttle through gradual speed ramps. Speed
// changes never jump: a new target starts a ramp from the current speed
// that completes over the ramp duration, advanced by Tick. A target
// arriving mid-ramp preempts the ramp in place; the speed curve stays
// continuous. Only EmergencyStop bypasses ramping, and only
// EmergencyStop clears a fault.
type Motor struct {
	driver       MotorDriver
	rampDuration time.Duration

	mu        sync.Mutex
	state     MotorState
	speed     int
	target    int
	direction models.Direction
	rampFrom  int
	rampStart time.Time
}

// NewMotor creates a stopped, forward-facing motor over a driver.
func NewMotor(driver MotorDriver, rampDuration time.Duration) *Motor {
	return &Motor{
		driver:       driver,
		rampDuration: rampDuration,
		state:        StateStopped,
		direction:    models.DirectionForward,
	}
}

// SetTarget requests a ramp to the given speed.
func (m *Motor) SetTarget(speed int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateFaulted {
		return ErrMotorFaulted
	}

	if speed == m.speed && m.state != StateRamping {
		// Already there: absolute commands make duplicates no-ops.
		return nil
	}

	m.target = speed
	m.rampFrom = m.speed
	m.rampStart = time.Now()
	m.state = StateRamping

	return nil
}

// SetDirection changes travel direction. The motor must be at rest: a
// moving train never reverses its field.
func (m *Motor) SetDirection(direction models.Direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateFaulted {
		return ErrMotorFaulted
	}

	if m.speed != 0 || m.state == StateRamping {
		return fmt.Errorf("%w: speed=%d", ErrDirectionAtSpeed, m.speed)
	}

	if err := m.driver.SetDirection(direction); err != nil {
		m.faultLocked(err)
		return err
	}

	m.direction = direction

	return nil
}

// EmergencyStop cuts power immediately, bypassing the ramp. It works
// from every state, including Faulted, and leaves the motor Stopped
// when the driver obeys.
func (m *Motor) EmergencyStop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.target = 0
	m.speed = 0

	if err := m.driver.Stop(); err != nil {
		m.state = StateFaulted
		return fmt.Errorf("%w: %w", errDriverStop, err)
	}

	m.state = StateStopped

	return nil
}

// Tick advances an in-flight ramp against the wall clock. Speed moves
// monotonically from the ramp origin to the target and never overshoots.
func (m *Motor) Tick(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRamping {
		return
	}

	progress := float64(now.Sub(m.rampStart)) / float64(m.rampDuration)
	if progress >= 1 {
		progress = 1
	}

	span := m.target - m.rampFrom
	next := m.rampFrom + int(math.Round(progress*float64(span)))

	if next != m.speed {
		if err := m.driver.SetSpeed(next); err != nil {
			m.faultLocked(err)
			return
		}

		m.speed = next
	}

	if progress >= 1 {
		if m.target == 0 {
			m.state = StateStopped
		} else {
			m.state = StateRunning
		}
	}
}

// Snapshot returns the motor's current control state.
func (m *Motor) Snapshot() MotorSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MotorSnapshot{
		State:     m.state,
		Speed:     m.speed,
		Target:    m.target,
		Direction: m.direction,
	}
}

// faultLocked latches the fault state and tries to de-energize the
// motor. Caller holds m.mu.
func (m *Motor) faultLocked(cause error) {
	m.state = StateFaulted

	log.Printf("Motor fault: %v", cause)

	if err := m.driver.Stop(); err != nil {
		log.Printf("Failed to stop faulted motor: %v", err)
	}
}
