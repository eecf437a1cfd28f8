package core

import "time"

// Liveness classification thresholds. Boundary ages land on the next
// tier: an age of exactly 30s is Unknown, exactly 120s is Offline.
const (
	OnlineThreshold  = 30 * time.Second
	OfflineThreshold = 120 * time.Second
)

// Liveness labels how recently a controller has been heard from.
type Liveness string

const (
	Online  Liveness = "online"
	Unknown Liveness = "unknown"
	Offline Liveness = "offline"
)

// Classify is a pure function of heartbeat age. It must be re-evaluated
// on every read: liveness is a function of wall-clock time, not an event,
// so the result is never cached. A zero lastSeen means the controller has
// never been heard from. A lastSeen in the future (clock skew between the
// controller and the core) counts as online.
func Classify(lastSeen, now time.Time) Liveness {
	if lastSeen.IsZero() {
		return Offline
	}

	age := now.Sub(lastSeen)

	switch {
	case age < OnlineThreshold:
		return Online
	case age < OfflineThreshold:
		return Unknown
	default:
		return Offline
	}
}
