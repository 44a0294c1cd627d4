package mqtt

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

//go:generate mockgen -source=client.go -destination=../../../test/unit/doubles/infra/mqtt/client_mock.go -package=mqtt -mock_names=Client=MockClient,Message=MockMessage

const (
	_defaultConnectTimeout   = 5 * time.Second
	_defaultOperationTimeout = 5 * time.Second
	_defaultKeepAlive        = 10 * time.Second
	_disconnectQuiesceMillis = 5000
)

var ErrConnectTimeout = errors.New("timed out connecting to mqtt broker")

type Client interface {
	Subscribe(topic string, qos byte, handler MessageHandler) error
	Unsubscribe(topic string) error
	Disconnect()
}

type Message interface {
	Topic() string
	Payload() []byte
}

type MessageHandler func(Message)

type SimpleClientOpts struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

type subscription struct {
	qos     byte
	handler MessageHandler
}

var _ Client = (*SimpleClient)(nil)

// SimpleClient wraps paho with auto reconnect and restores subscriptions
// after every reconnection.
type SimpleClient struct {
	client        paho.Client
	mu            sync.RWMutex
	subscriptions map[string]subscription
}

func NewSimpleClient(opts SimpleClientOpts) (*SimpleClient, error) {
	c := &SimpleClient{
		subscriptions: make(map[string]subscription),
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetAutoReconnect(true).
		SetKeepAlive(_defaultKeepAlive).
		SetConnectTimeout(_defaultConnectTimeout).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			slog.Error("mqtt connection lost", slog.String("error", err.Error()))
		})

	c.client = paho.NewClient(pahoOpts)
	token := c.client.Connect()
	if !token.WaitTimeout(_defaultConnectTimeout) {
		return nil, ErrConnectTimeout
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.Broker, err)
	}

	return c, nil
}

func (c *SimpleClient) onConnect(client paho.Client) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	slog.Info("connected to mqtt broker", slog.Int("subscriptions", len(c.subscriptions)))
	for topic, sub := range c.subscriptions {
		token := client.Subscribe(topic, sub.qos, adapt(sub.handler))
		token.WaitTimeout(_defaultOperationTimeout)
		if err := token.Error(); err != nil {
			slog.Error("restoring mqtt subscription", slog.String("topic", topic), slog.String("error", err.Error()))
		}
	}
}

func (c *SimpleClient) Subscribe(topic string, qos byte, handler MessageHandler) error {
	c.mu.Lock()
	c.subscriptions[topic] = subscription{qos: qos, handler: handler}
	c.mu.Unlock()

	token := c.client.Subscribe(topic, qos, adapt(handler))
	token.WaitTimeout(_defaultOperationTimeout)
	if err := token.Error(); err != nil {
		c.mu.Lock()
		delete(c.subscriptions, topic)
		c.mu.Unlock()
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}

	slog.Info("subscribed to mqtt topic", slog.String("topic", topic))
	return nil
}

func (c *SimpleClient) Unsubscribe(topic string) error {
	c.mu.Lock()
	delete(c.subscriptions, topic)
	c.mu.Unlock()

	token := c.client.Unsubscribe(topic)
	token.WaitTimeout(_defaultOperationTimeout)
	if err := token.Error(); err != nil {
		return fmt.Errorf("unsubscribing from %s: %w", topic, err)
	}

	return nil
}

func (c *SimpleClient) Disconnect() {
	c.mu.Lock()
	c.subscriptions = make(map[string]subscription)
	c.mu.Unlock()

	c.client.Disconnect(_disconnectQuiesceMillis)
}

func adapt(handler MessageHandler) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		handler(msg)
	}
}
