package repository

import (
	"context"
	"database/sql"
	"fmt"

	"InvestGuide/internal/domain/models"
	"InvestGuide/internal/domain/repository"
	pkgkafka "InvestGuide/pkg/kafka"
)

// KafkaRoundPublisher implements Publisher over a Kafka topic. Events are
// keyed by session id so one session's rounds stay in order.
type KafkaRoundPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaRoundPublisher creates the Kafka-backed round publisher.
func NewKafkaRoundPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaRoundPublisher{producer: producer, topic: topic}
}

func (p *KafkaRoundPublisher) Publish(ctx context.Context, e *models.RoundEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(e.SessionID), e)
}

func (p *KafkaRoundPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// ClickHouseRoundArchiver implements Archiver over a ClickHouse table.
type ClickHouseRoundArchiver struct {
	db    *sql.DB
	table string
}

// NewClickHouseRoundArchiver creates the ClickHouse-backed round archiver.
func NewClickHouseRoundArchiver(db *sql.DB, table string) repository.Archiver {
	return &ClickHouseRoundArchiver{db: db, table: table}
}

func (a *ClickHouseRoundArchiver) Archive(ctx context.Context, e *models.RoundEvent) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (session_id, round, top_strategy, top_score, risk_tolerance, horizon, knowledge_level, recommendation, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		a.table,
	)
	_, err := a.db.ExecContext(ctx, q,
		e.SessionID,
		e.Round,
		e.TopStrategy,
		e.TopScore,
		e.RiskTolerance,
		e.Horizon,
		e.KnowledgeLevel,
		e.Recommendation,
		e.CreatedAt,
	)
	return err
}

func (a *ClickHouseRoundArchiver) Health(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *ClickHouseRoundArchiver) Close() error {
	return nil // connection pool managed by pkg/clickhouse
}

// NoopPublisher satisfies Publisher when the events channel is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *models.RoundEvent) error { return nil }
func (NoopPublisher) Close() error                                      { return nil }

// NoopArchiver satisfies Archiver when the archive is disabled.
type NoopArchiver struct{}

func (NoopArchiver) Archive(context.Context, *models.RoundEvent) error { return nil }
func (NoopArchiver) Health(context.Context) error                      { return nil }
func (NoopArchiver) Close() error                                      { return nil }
