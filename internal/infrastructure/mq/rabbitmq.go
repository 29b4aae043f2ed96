package mq

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"project-manager-api/config"
	"project-manager-api/internal/domain/activity"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

// RoutingKeys are the activity types published on the exchange.
var RoutingKeys = []string{string(activity.TypeFileUploaded)}

type (
	InputCh = chan Event

	channel interface {
		PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
		Close() error
	}

	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh channel
		in    InputCh
	}
	Event struct {
		Id       uuid.UUID       `json:"event_id"`
		TS       time.Time       `json:"time_stamp"`
		Type     string          `json:"event_type"`
		UserID   string          `json:"user_id"`
		Activity activity.Record `json:"activity"`
	}
)

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
}

func NewEvent(rec activity.Record) Event {
	return Event{
		Id:       uuid.New(),
		TS:       time.Now().UTC(),
		Type:     string(rec.Type),
		UserID:   rec.UserID.String(),
		Activity: rec,
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "projectmanagerapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
		TLSClientConfig: nil,
	}

	conn, err := amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	r.conn, r.pubCh = conn, ch

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	ch, ok := r.pubCh.(*amqp091.Channel)
	if !ok {
		return errors.New("rabbitmq is not connected")
	}

	var err error
	if err = ch.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		return err
	}
	q, err := ch.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range RoutingKeys {
		if err = ch.QueueBind(q.Name, rk, r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// Publish never blocks the request path; false means the buffer is full and the event is dropped.
func (r *RabbitMQ) Publish(rec activity.Record) bool {
	select {
	case r.in <- NewEvent(rec):
		return true
	default:
		return false
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker ")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				// alert
				r.log.Error("mq publish error", zap.Error(err), zap.Stringer("event_id", e.Id))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		// alert
		return err
	}

	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         e.Type,
		Body:         b,
	}
	if err = r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		e.Type,
		true,
		false,
		pub,
	); err != nil {
		return err
	}

	return nil
}

func (r *RabbitMQ) Close() error {
	var errs []error
	if r.pubCh != nil {
		errs = append(errs, r.pubCh.Close())
	}
	if r.conn != nil {
		errs = append(errs, r.conn.Close())
	}
	return errors.Join(errs...)
}

func (r *RabbitMQ) GetInputChan() chan Event     { return r.in }
func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
