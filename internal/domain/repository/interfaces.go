package repository

import (
	"context"

	"InvestGuide/internal/domain/models"
)

// Publisher emits completed-round events to a message backend. Best-effort:
// callers log failures and keep the round.
type Publisher interface {
	Publish(ctx context.Context, e *models.RoundEvent) error
	Close() error
}

// Archiver persists completed rounds for offline analytics.
type Archiver interface {
	Archive(ctx context.Context, e *models.RoundEvent) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational metrics for the advisory service.
type Metrics interface {
	RecordRound(outcome string)
	RecordGeneratorLatency(seconds float64)
	RecordError(kind string)
	RecordMatchScore(score int)
	RecordSessionCreated()
	RecordSimulation()
}
