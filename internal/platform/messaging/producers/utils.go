package producers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	topicReadAttempts = 5
	topicReadBackoff  = 2 * time.Second
)

// ensureTopic creates the topic when its partitions cannot be read after a
// few attempts. Zero partition or replica counts default to 1.
func ensureTopic(admin topicAdmin, topic kafka.TopicConfig, backoff time.Duration, log *slog.Logger) error {
	var partitions []kafka.Partition
	var err error

	for attempt := 1; attempt <= topicReadAttempts; attempt++ {
		partitions, err = admin.ReadPartitions(topic.Topic)
		if err == nil {
			break
		}
		log.Warn("Failed to read partitions, retrying...", "topic", topic.Topic, "attempt", attempt, "error", err)
		if attempt < topicReadAttempts {
			time.Sleep(backoff)
		}
	}

	if len(partitions) > 0 {
		log.Info("Kafka topic already exists", "topic", topic.Topic, "partitions", len(partitions))
		return nil
	}

	if topic.NumPartitions <= 0 {
		topic.NumPartitions = 1
	}
	if topic.ReplicationFactor <= 0 {
		topic.ReplicationFactor = 1
	}

	log.Info("Kafka topic does not exist, creating it", "topic", topic.Topic, "last_read_error", err)
	if err := admin.CreateTopics(topic); err != nil {
		return fmt.Errorf("failed to create kafka topic %s: %w", topic.Topic, err)
	}
	log.Info("Successfully created Kafka topic", "topic", topic.Topic)
	return nil
}

// dialAndEnsureTopic opens a short-lived broker connection to provision a topic
func dialAndEnsureTopic(brokers, topic string, numPartitions, replicationFactor int, log *slog.Logger) error {
	conn, err := kafka.Dial("tcp", brokers)
	if err != nil {
		return fmt.Errorf("failed to dial kafka: %w", err)
	}
	defer conn.Close()

	return ensureTopic(conn, kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     numPartitions,
		ReplicationFactor: replicationFactor,
	}, topicReadBackoff, log)
}
