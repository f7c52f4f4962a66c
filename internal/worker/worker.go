package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
	"transcript_api/internal/observability"
	"transcript_api/internal/queue"
	"transcript_api/internal/transcript"
	"transcript_api/internal/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const maxRetries = 3

func republishWithRetry(ch *amqp.Channel, msg *amqp.Delivery, retryCount int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Create new headers with incremented retry count
	headers := amqp.Table{}
	if msg.Headers != nil {
		headers = msg.Headers
	}
	headers["x-retry-count"] = retryCount

	return ch.PublishWithContext(
		ctx,
		"",             // exchange
		msg.RoutingKey, // routing key (queue name)
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
		},
	)
}

// StartWorker consumes saved-transcript events and writes word counts back
// to the store.
func StartWorker(conn *amqp.Connection, db *sql.DB, repo transcript.TranscriptRepositoryInterface, id int) {
	ch, err := conn.Channel()
	if err != nil {
		logrus.Fatalf("Worker %d failed to open channel: %v", id, err)
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		logrus.Fatalf("Worker %d failed to set QoS: %v", id, err)
	}

	msgs, err := ch.Consume(
		queue.TranscriptEventsQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logrus.Fatalf("Worker %d failed to start consuming messages: %v", id, err)
		return
	}

	logrus.Infof("Worker %d started", id)

	for msg := range msgs {
		observability.GlobalMetrics.QueueMessagesConsumed.WithLabelValues(queue.TranscriptEventsQueue).Inc()

		var event transcript.Event
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			logrus.Error("invalid event payload")
			msg.Nack(false, false)
			continue
		}

		retryCount := int32(0)
		if msg.Headers != nil {
			if count, ok := msg.Headers["x-retry-count"].(int32); ok {
				retryCount = count
			}
		}

		logrus.Infof(
			"Worker %d processing transcript=%d for user=%s (retry: %d)",
			id,
			event.ID,
			event.Username,
			retryCount,
		)

		startTime := time.Now()

		tr, err := repo.GetByID(db, event.ID)
		if err != nil {
			logrus.WithError(err).Error("Failed to load transcript for post-processing")
			observability.GlobalMetrics.PostProcessingFailures.WithLabelValues("load_error").Inc()
			// A transcript that no longer exists will never process
			msg.Nack(false, false)
			continue
		}

		wordCount := countWords(tr.Text)

		err = utils.WithTransaction(db, func(tx *sql.Tx) error {
			return repo.UpdateWordCount(tx, event.ID, wordCount)
		})

		observability.GlobalMetrics.PostProcessingDuration.Observe(time.Since(startTime).Seconds())

		if err != nil {
			logrus.WithError(err).Error("Failed to update word count")

			if retryCount >= maxRetries {
				observability.GlobalMetrics.PostProcessingFailures.WithLabelValues("max_retries").Inc()
				msg.Nack(false, false)
				continue
			}

			logrus.Infof("Worker %d: update failed, requeuing (retry %d/%d)", id, retryCount+1, maxRetries)

			if err := republishWithRetry(ch, &msg, retryCount+1); err != nil {
				logrus.WithError(err).Error("Failed to republish message")
				observability.GlobalMetrics.PostProcessingFailures.WithLabelValues("republish_error").Inc()
				msg.Nack(false, false)
				continue
			}

			observability.GlobalMetrics.QueueMessagesPublished.WithLabelValues(queue.TranscriptEventsQueue).Inc()
			msg.Ack(false)
			continue
		}

		logrus.Infof("Worker %d: transcript %d word count is %d", id, event.ID, wordCount)
		msg.Ack(false)
	}
}
