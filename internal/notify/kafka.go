package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
)

// KafkaNotifier publishes confirmations to a Kafka topic; a downstream
// consumer owns the actual gateway call. A sync producer is used so the
// dispatcher sees delivery errors and can log them.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return &KafkaNotifier{producer: producer, topic: topic}, nil
}

func (n *KafkaNotifier) Send(_ context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, _, err = n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(msg.OrderNumber),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}
