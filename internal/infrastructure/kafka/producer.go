package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"project-manager-api/internal/domain/activity"
	"project-manager-api/internal/infrastructure/mq"
)

const bufferSize = 128

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer publishes activity events keyed by user so one user's events stay ordered in a partition.
type Producer struct {
	writer messageWriter
	log    *zap.Logger
	in     chan mq.Event
}

func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		Async:        false,
	}
	return newProducer(w, logger)
}

func newProducer(w messageWriter, logger *zap.Logger) *Producer {
	return &Producer{
		writer: w,
		log:    logger,
		in:     make(chan mq.Event, bufferSize),
	}
}

func (p *Producer) Publish(rec activity.Record) bool {
	select {
	case p.in <- mq.NewEvent(rec):
		return true
	default:
		return false
	}
}

func (p *Producer) PublisherWorker(ctx context.Context) {
	p.log.Info("starting kafka publisher worker")

	defer func() {
		p.log.Info("kafka publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-p.in:
			if err := p.publish(ctx, e); err != nil {
				// alert
				p.log.Error("kafka publish error", zap.Error(err), zap.Stringer("event_id", e.Id))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (p *Producer) publish(ctx context.Context, e mq.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(e.UserID),
		Value: b,
		Time:  e.TS,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(e.Type)},
			{Key: "event_id", Value: []byte(e.Id.String())},
		},
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

