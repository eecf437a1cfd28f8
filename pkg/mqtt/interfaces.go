// Package mqtt wraps the paho MQTT client with the railyard topic scheme
// and delivery guarantees.
package mqtt

//go:generate mockgen -destination=mock_mqtt.go -package=mqtt github.com/railyardhq/railyard/pkg/mqtt Client

// Delivery guarantees per channel: commands ride QoS 1 (at-least-once,
// consumers must tolerate duplicates); telemetry and heartbeats ride
// QoS 0 (a missed sample is superseded by the next one).
const (
	QoSCommand   byte = 1
	QoSTelemetry byte = 0
)

// Handler processes a single inbound message. Handlers run on the
// transport's delivery goroutine and must not block.
type Handler func(topic string, payload []byte)

// Client is the transport surface the core and the edge executor depend
// on. Implementations reconnect automatically and re-establish
// subscriptions after a reconnect.
type Client interface {
	Connect() error
	Publish(topic string, qos byte, payload []byte) error
	Subscribe(topic string, qos byte, handler Handler) error
	Close()
}
