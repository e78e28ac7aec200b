//go:build wireinject
// +build wireinject

package di

import (
	"InvestGuide/pkg/config"
	"InvestGuide/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Domain data and infrastructure clients
		ProvideCatalog,
		ProvideSessionCache,
		ProvideSessionStore,
		ProvideGenerator,
		ProvideRoundPublisher,
		ProvideRoundArchiver,

		// Use cases and transport
		ProvideAdvisor,
		ProvideTranscriptChannel,
		ProvideAdvisorHandler,
		ProvidePlanningHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
