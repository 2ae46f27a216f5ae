package analytics

import (
	"gorm.io/gorm"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/repository"
	"github.com/lagerkern/replenish/internal/analytics/shiftsignal"
)

// ProvideCatalogRepository provides the catalog repository
func ProvideCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return repository.NewGormCatalogRepository(db)
}

// ProvideLedgerRepository provides the ledger repository with tracing
func ProvideLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return repository.NewTracingLedgerRepository(db)
}

// ProvideStatsRepository provides the weekly stats repository
func ProvideStatsRepository(db *gorm.DB) domain.StatsRepository {
	return repository.NewGormStatsRepository(db)
}

// ProvideUsageNames provides the labels for internal usage codes
func ProvideUsageNames() domain.UsageNames {
	return domain.DefaultUsageNames()
}

// ProvideDetector provides the shift signal detector with operational tuning
func ProvideDetector() *shiftsignal.Detector {
	return shiftsignal.NewDetector(shiftsignal.DefaultCalendar(), shiftsignal.DefaultConfig())
}
