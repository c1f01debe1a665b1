package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"lead-relay/config"
	"lead-relay/logger"

	"github.com/segmentio/kafka-go"
)

var (
	consumer        *kafka.Reader
	consumerMutex   sync.Mutex
	consumerRunning bool
	stopConsumer    chan bool
)

// emailEvent is the payload queued on the email topic by SendEmail.
type emailEvent struct {
	Event      string `json:"event"`
	Recipient  string `json:"recipient"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Attachment string `json:"attachment,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// InitConsumer initializes a Kafka reader for the email topic. The consumer
// turns queued email.send events into SMTP deliveries.
func InitConsumer() error {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()

	if config.AppConfig.KafkaBrokers == "" {
		logger.Info("Kafka consumer is disabled (KAFKA_BROKERS is empty)")
		return nil
	}

	brokers := strings.Split(config.AppConfig.KafkaBrokers, ",")

	var validBrokers []string
	for _, b := range brokers {
		if b := strings.TrimSpace(b); b != "" {
			validBrokers = append(validBrokers, b)
		}
	}

	if len(validBrokers) == 0 {
		logger.Warn("No valid Kafka brokers configured for consumer")
		return nil
	}

	consumer = kafka.NewReader(kafka.ReaderConfig{
		Brokers:          validBrokers,
		Topic:            config.AppConfig.KafkaEmailTopic,
		GroupID:          "lead-relay-consumer-group",
		StartOffset:      -1,
		CommitInterval:   time.Second,
		MaxBytes:         10e6,
		SessionTimeout:   20 * time.Second,
		ReadBackoffMin:   100 * time.Millisecond,
		ReadBackoffMax:   1 * time.Second,
		QueueCapacity:    100,
		RebalanceTimeout: 60 * time.Second,
	})

	stopConsumer = make(chan bool)
	logger.Info("Kafka consumer initialized. Brokers=%v, Topic=%s", validBrokers, config.AppConfig.KafkaEmailTopic)
	return nil
}

// StartConsumer starts consuming messages in a separate goroutine.
// This runs continuously until StopConsumer() is called.
func StartConsumer() {
	consumerMutex.Lock()
	if consumer == nil {
		consumerMutex.Unlock()
		logger.Warn("Consumer not initialized, cannot start")
		return
	}
	if consumerRunning {
		consumerMutex.Unlock()
		return
	}
	consumerRunning = true
	consumerMutex.Unlock()

	go func() {
		logger.Info("Kafka consumer loop started")
		for {
			select {
			case <-stopConsumer:
				logger.Info("Kafka consumer loop stopping")
				return
			default:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			msg, err := consumer.ReadMessage(ctx)
			cancel()
			if err != nil {
				if ctx.Err() == context.DeadlineExceeded {
					continue
				}
				logger.Warn("Kafka consumer read error: %v", err)
				time.Sleep(time.Second)
				continue
			}

			if err := processEmailMessage(msg.Value); err != nil {
				logger.Error("Error processing email event: %v", err)
			}
		}
	}()
}

func processEmailMessage(payload []byte) error {
	var event emailEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	if event.Event != "email.send" {
		logger.Warn("Ignoring unknown event type on email topic: %s", event.Event)
		return nil
	}

	if event.Attachment != "" {
		return SendEmailDirect(event.Recipient, event.Subject, event.Body, event.Attachment)
	}
	return SendEmailDirect(event.Recipient, event.Subject, event.Body)
}

// StopConsumer stops the consumer loop and closes the reader.
func StopConsumer() error {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()

	if !consumerRunning {
		return nil
	}
	consumerRunning = false
	close(stopConsumer)

	if consumer != nil {
		return consumer.Close()
	}
	return nil
}
