package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"shipfee/internal/service/shipping/application"
)

// NewKafkaWriter 创建发送报价事件的 writer，按 quoteId 分区
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// messageWriter 是 *kafka.Writer 的最小接口
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaQuotePublisher 实现了 application.QuotePublisher
type KafkaQuotePublisher struct {
	writer messageWriter
}

// NewKafkaQuotePublisher 创建一个新的报价事件生产者
func NewKafkaQuotePublisher(writer messageWriter) *KafkaQuotePublisher {
	return &KafkaQuotePublisher{writer: writer}
}

// PublishQuoted 发送报价事件，追踪上下文写入消息头
func (p *KafkaQuotePublisher) PublishQuoted(ctx context.Context, event *application.QuotedEvent) error {
	msg, err := buildQuotedMessage(ctx, event)
	if err != nil {
		return err
	}
	return errors.Wrap(p.writer.WriteMessages(ctx, msg), "write quoted event")
}

// Close 关闭底层的Kafka writer
func (p *KafkaQuotePublisher) Close() error {
	return p.writer.Close()
}

func buildQuotedMessage(ctx context.Context, event *application.QuotedEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, "marshal quoted event")
	}

	msg := kafka.Message{
		Key:   []byte(event.QuoteID),
		Value: value,
		Time:  event.QuotedAt,
	}
	otel.GetTextMapPropagator().Inject(ctx, &HeaderCarrier{Headers: &msg.Headers})
	return msg, nil
}

// HeaderCarrier 让 otel propagator 读写 kafka 消息头
type HeaderCarrier struct {
	Headers *[]kafka.Header
}

func (c *HeaderCarrier) Get(key string) string {
	for _, h := range *c.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *HeaderCarrier) Set(key, value string) {
	for i, h := range *c.Headers {
		if h.Key == key {
			(*c.Headers)[i].Value = []byte(value)
			return
		}
	}
	*c.Headers = append(*c.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.Headers))
	for _, h := range *c.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}
