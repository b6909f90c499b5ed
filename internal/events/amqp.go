package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

var ErrPublisherClosed = errors.New("publisher closed")

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	NotifyClose(c chan *amqp091.Error) chan *amqp091.Error
	Close() error
}

// dialFunc opens a connection and a channel on it. The connection may be
// nil when the channel owns everything.
type dialFunc func() (io.Closer, channel, error)

// AMQPPublisher sends events to a durable topic exchange, routed by event
// type. A channel dropped by the broker is replaced on the next publish.
type AMQPPublisher struct {
	mu       sync.Mutex
	dial     dialFunc
	conn     io.Closer
	channel  channel
	closed   chan *amqp091.Error
	exchange string
	shutdown bool
	now      func() time.Time
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	return newAMQPPublisher(func() (io.Closer, channel, error) {
		conn, err := amqp091.Dial(url)
		if err != nil {
			return nil, nil, fmt.Errorf("dial AMQP: %w", err)
		}

		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open channel: %w", err)
		}
		return conn, ch, nil
	}, exchange)
}

func newAMQPPublisher(dial dialFunc, exchange string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{dial: dial, exchange: exchange, now: time.Now}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect expects mu to be held by the caller once the publisher is shared.
func (p *AMQPPublisher) connect() error {
	conn, ch, err := p.dial()
	if err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		if conn != nil {
			_ = conn.Close()
		}
		return fmt.Errorf("declare exchange: %w", err)
	}

	p.conn = conn
	p.channel = ch
	p.closed = ch.NotifyClose(make(chan *amqp091.Error, 1))
	return nil
}

func (p *AMQPPublisher) dropped() bool {
	if p.channel == nil {
		return true
	}
	select {
	case <-p.closed:
		return true
	default:
		return false
	}
}

func (p *AMQPPublisher) release() error {
	var err error
	if p.channel != nil {
		err = p.channel.Close()
	}
	if p.conn != nil {
		if closeErr := p.conn.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	p.conn, p.channel, p.closed = nil, nil, nil
	return err
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shutdown {
		return ErrPublisherClosed
	}
	if p.dropped() {
		_ = p.release()
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    p.now(),
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		if errors.Is(err, amqp091.ErrClosed) {
			_ = p.release()
		}
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.shutdown = true
	return p.release()
}
