//go:build wireinject
// +build wireinject

package analytics

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lagerkern/replenish/internal/analytics/delivery/http"
	"github.com/lagerkern/replenish/internal/analytics/usecase/command"
	"github.com/lagerkern/replenish/internal/analytics/usecase/query"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCatalogRepository,
	ProvideLedgerRepository,
	ProvideStatsRepository,
)

var UsecaseSet = wire.NewSet(
	ProvideUsageNames,
	ProvideDetector,
	command.NewRunRestockHandler,
	command.NewAggregateWeekHandler,
	query.NewRestockCheckHandler,
	query.NewForecastHandler,
	query.NewShiftSignalsHandler,
	query.NewLowDaysHandler,
	query.NewWeeklyStatsHandler,
	query.NewNearExpiryHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.EventPublisher, redisClient *redis.Client) (*http.AnalyticsHandler, error) {
	wire.Build(
		RepositorySet,
		UsecaseSet,
		http.NewAnalyticsHandler,
	)
	return nil, nil
}

// InitializeBookingHandler initializes the consumer-facing booking handler
func InitializeBookingHandler(db *gorm.DB) (*command.RecordBookingHandler, error) {
	wire.Build(
		ProvideLedgerRepository,
		command.NewRecordBookingHandler,
	)
	return nil, nil
}
