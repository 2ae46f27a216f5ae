package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Analytics Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CheckRestock godoc
// @Summary Check restock needs
// @Description Compute which items need reordering without writing anything
// @Tags Restock
// @Produce json
// @Success 200 {object} object{success=bool,data=object{needs_restock=bool,lines=array}}
// @Failure 422 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/restock/check [get]
func (h *AnalyticsHandler) CheckRestockDoc() {}

// RunRestock godoc
// @Summary Run a restock batch
// @Description Compute restock lines and open the resulting orders atomically
// @Tags Restock
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object{run_id=string,lines=array,orders_opened=int,bookings_affected=int}}
// @Failure 422 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/restock/run [post]
func (h *AnalyticsHandler) RunRestockDoc() {}

// AggregateWeek godoc
// @Summary Aggregate a week of bookings
// @Description Fold one calendar week of ledger entries into weekly stats and prune expired data
// @Tags Stats
// @Accept json
// @Produce json
// @Param request body object{week_start=string} false "Week to aggregate (defaults to last completed week)"
// @Success 200 {object} object{success=bool,message=string,data=object{run_id=string,week_start=string,rows_upserted=int,pruned=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/stats/aggregate [post]
func (h *AnalyticsHandler) AggregateWeekDoc() {}

// GetWeeklyStats godoc
// @Summary Get weekly stats for an item
// @Description Read the stored weekly aggregates for one item
// @Tags Stats
// @Produce json
// @Param item_id query int true "Item ID"
// @Param weeks query int false "Weeks back from now (default: 12)"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/stats/weekly [get]
func (h *AnalyticsHandler) GetWeeklyStatsDoc() {}

// GetForecast godoc
// @Summary Demand forecast
// @Description Forecast weekly demand and recommended stock bounds per item
// @Tags Forecast
// @Produce json
// @Success 200 {object} object{success=bool,data=object{reports=array,skipped=array}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/forecast [get]
func (h *AnalyticsHandler) GetForecastDoc() {}

// GetShiftSignals godoc
// @Summary Shift anomaly signals
// @Description Flag shift instances whose booking count fell far below their own history
// @Tags Insights
// @Produce json
// @Param from query string false "Window start (RFC3339 or YYYY-MM-DD, default: 90 days ago)"
// @Param to query string false "Window end (RFC3339 or YYYY-MM-DD, default: now)"
// @Success 200 {object} object{success=bool,data=object{all=array,hygiene=array}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/insights/shift-signals [get]
func (h *AnalyticsHandler) GetShiftSignalsDoc() {}

// GetLowDays godoc
// @Summary Low activity days
// @Description Flag days whose booking count fell below their centered rolling average
// @Tags Insights
// @Produce json
// @Param from query string false "Window start (RFC3339 or YYYY-MM-DD, default: 90 days ago)"
// @Param to query string false "Window end (RFC3339 or YYYY-MM-DD, default: now)"
// @Success 200 {object} object{success=bool,data=object{all=array,hygiene=array}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/insights/low-days [get]
func (h *AnalyticsHandler) GetLowDaysDoc() {}

// GetNearExpiry godoc
// @Summary Items near expiry
// @Description List items whose tracked batch expires within the next 21 days
// @Tags Items
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/items/near-expiry [get]
func (h *AnalyticsHandler) GetNearExpiryDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *AnalyticsHandler) HealthCheckDoc() {}
