package mqtt

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	keepAlive      = 60 * time.Second
)

var (
	ErrNotConnected  = errors.New("not connected to broker")
	errFailedConnect = errors.New("failed to connect to broker")
	errFailedPublish = errors.New("failed to publish")
	errFailedSub     = errors.New("failed to subscribe")
)

type subscription struct {
	topic   string
	qos     byte
	handler Handler
}

// PahoClient is the production Client backed by paho. Subscriptions are
// tracked locally and replayed on every (re)connect, so a broker restart
// does not silently drop the command or telemetry feeds.
type PahoClient struct {
	client pahomqtt.Client

	mu     sync.Mutex
	subs   []subscription
	onLost func(error)
	onUp   func()
}

// Option configures a PahoClient.
type Option func(*PahoClient)

// WithConnectionLostHandler registers a callback fired when the broker
// connection drops. The edge executor uses this to arm its fail-safe.
func WithConnectionLostHandler(fn func(error)) Option {
	return func(c *PahoClient) {
		c.onLost = fn
	}
}

// WithConnectionUpHandler registers a callback fired when the connection
// is (re)established, after subscriptions have been replayed.
func WithConnectionUpHandler(fn func()) Option {
	return func(c *PahoClient) {
		c.onUp = fn
	}
}

// NewClient creates an MQTT client for the given broker URL
// (e.g. tcp://mqtt:1883). The clientID must be unique per process.
func NewClient(brokerURL, clientID string, options ...Option) *PahoClient {
	c := &PahoClient{}

	for _, opt := range options {
		opt(c)
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetKeepAlive(keepAlive).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetOnConnectHandler(c.handleConnect).
		SetConnectionLostHandler(c.handleConnectionLost)

	c.client = pahomqtt.NewClient(opts)

	return c
}

// Connect establishes the broker connection, blocking up to the connect
// timeout. After the first successful connect, paho reconnects on its own.
func (c *PahoClient) Connect() error {
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("%w: timeout after %v", errFailedConnect, connectTimeout)
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", errFailedConnect, err)
	}

	return nil
}

// Publish sends a payload to a topic and waits for the broker to accept
// it. At QoS 1 the wait covers the broker acknowledgment, which is the
// at-least-once guarantee commands rely on; it never waits on any
// downstream consumer.
func (c *PahoClient) Publish(topic string, qos byte, payload []byte) error {
	if !c.client.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w to %s: timeout after %v", errFailedPublish, topic, publishTimeout)
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("%w to %s: %w", errFailedPublish, topic, err)
	}

	return nil
}

// Subscribe registers a handler for a topic filter. The subscription is
// remembered and replayed after reconnects.
func (c *PahoClient) Subscribe(topic string, qos byte, handler Handler) error {
	c.mu.Lock()
	c.subs = append(c.subs, subscription{topic: topic, qos: qos, handler: handler})
	c.mu.Unlock()

	return c.subscribe(topic, qos, handler)
}

func (c *PahoClient) subscribe(topic string, qos byte, handler Handler) error {
	token := c.client.Subscribe(topic, qos, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})

	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("%w %s: timeout", errFailedSub, topic)
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("%w %s: %w", errFailedSub, topic, err)
	}

	return nil
}

func (c *PahoClient) handleConnect(_ pahomqtt.Client) {
	c.mu.Lock()
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	onUp := c.onUp
	c.mu.Unlock()

	for _, sub := range subs {
		if err := c.subscribe(sub.topic, sub.qos, sub.handler); err != nil {
			log.Printf("Failed to restore subscription to %s: %v", sub.topic, err)
		}
	}

	if onUp != nil {
		onUp()
	}
}

func (c *PahoClient) handleConnectionLost(_ pahomqtt.Client, err error) {
	log.Printf("Connection to broker lost: %v", err)

	c.mu.Lock()
	onLost := c.onLost
	c.mu.Unlock()

	if onLost != nil {
		onLost(err)
	}
}

// Close disconnects from the broker, allowing in-flight messages a short
// drain window.
func (c *PahoClient) Close() {
	c.client.Disconnect(uint(250)) //nolint:gomnd // milliseconds
}
