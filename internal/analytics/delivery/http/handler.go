package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/usecase/command"
	"github.com/lagerkern/replenish/internal/analytics/usecase/query"
	"github.com/lagerkern/replenish/pkg/logger"
)

// AnalyticsHandler handles HTTP requests for the analytics service
type AnalyticsHandler struct {
	// Command handlers
	runRestockHandler *command.RunRestockHandler
	aggregateHandler  *command.AggregateWeekHandler

	// Query handlers
	restockCheckHandler *query.RestockCheckHandler
	forecastHandler     *query.ForecastHandler
	shiftSignalsHandler *query.ShiftSignalsHandler
	lowDaysHandler      *query.LowDaysHandler
	weeklyStatsHandler  *query.WeeklyStatsHandler
	nearExpiryHandler   *query.NearExpiryHandler

	redisClient *redis.Client

	requestCounter    *prometheus.CounterVec
	requestLatency    *prometheus.HistogramVec
	restockCandidates prometheus.Gauge
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	runRestockHandler *command.RunRestockHandler,
	aggregateHandler *command.AggregateWeekHandler,
	restockCheckHandler *query.RestockCheckHandler,
	forecastHandler *query.ForecastHandler,
	shiftSignalsHandler *query.ShiftSignalsHandler,
	lowDaysHandler *query.LowDaysHandler,
	weeklyStatsHandler *query.WeeklyStatsHandler,
	nearExpiryHandler *query.NearExpiryHandler,
	redisClient *redis.Client,
) *AnalyticsHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_service_requests_total",
			Help: "Total number of requests to analytics service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_service_request_duration_seconds",
			Help:    "Duration of analytics service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	restockCandidates := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "analytics_service_restock_candidates",
			Help: "Number of items the last restock evaluation flagged",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(restockCandidates)

	return &AnalyticsHandler{
		runRestockHandler:   runRestockHandler,
		aggregateHandler:    aggregateHandler,
		restockCheckHandler: restockCheckHandler,
		forecastHandler:     forecastHandler,
		shiftSignalsHandler: shiftSignalsHandler,
		lowDaysHandler:      lowDaysHandler,
		weeklyStatsHandler:  weeklyStatsHandler,
		nearExpiryHandler:   nearExpiryHandler,
		redisClient:         redisClient,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		restockCandidates:   restockCandidates,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *AnalyticsHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CheckRestock handles GET /api/restock/check
func (h *AnalyticsHandler) CheckRestock(w http.ResponseWriter, r *http.Request) {
	result, err := h.restockCheckHandler.Handle()
	if err != nil {
		h.respondError(w, r, err, "Failed to evaluate restock")
		return
	}

	h.restockCandidates.Set(float64(len(result.Lines)))
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// RunRestock handles POST /api/restock/run
func (h *AnalyticsHandler) RunRestock(w http.ResponseWriter, r *http.Request) {
	result, err := h.runRestockHandler.Handle(r.Context(), command.RunRestockCommand{})
	if err != nil {
		h.respondError(w, r, err, "Restock run failed")
		return
	}

	h.restockCandidates.Set(float64(len(result.Lines)))
	h.flushReportCache(r)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Restock run completed",
		Data:    result,
	})
}

// AggregateWeek handles POST /api/stats/aggregate. The week may come as a
// query parameter or a JSON body; the body wins when both are present.
func (h *AnalyticsHandler) AggregateWeek(w http.ResponseWriter, r *http.Request) {
	weekStartRaw := r.URL.Query().Get("week_start")

	var req struct {
		WeekStart string `json:"week_start"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid request body",
			})
			return
		}
	}
	if req.WeekStart != "" {
		weekStartRaw = req.WeekStart
	}

	cmd := command.AggregateWeekCommand{}
	if weekStartRaw != "" {
		weekStart, err := parseTimeParam(weekStartRaw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid week_start, expected RFC3339 or YYYY-MM-DD",
			})
			return
		}
		cmd.WeekStart = weekStart
	}

	result, err := h.aggregateHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err, "Aggregation failed")
		return
	}

	h.flushReportCache(r)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Week aggregated successfully",
		Data:    result,
	})
}

// flushReportCache drops cached report responses after a write so readers
// never see pre-write data.
func (h *AnalyticsHandler) flushReportCache(r *http.Request) {
	if err := InvalidateCache(h.redisClient, "cache:*"); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to invalidate report cache")
	}
}

// GetWeeklyStats handles GET /api/stats/weekly
func (h *AnalyticsHandler) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseUint(r.URL.Query().Get("item_id"), 10, 32)
	if err != nil || itemID == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item_id",
		})
		return
	}
	weeks, _ := strconv.Atoi(r.URL.Query().Get("weeks"))

	rows, err := h.weeklyStatsHandler.Handle(query.WeeklyStatsQuery{
		ItemID: uint(itemID),
		Weeks:  weeks,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to load weekly stats")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    rows,
	})
}

// GetForecast handles GET /api/forecast
func (h *AnalyticsHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.forecastHandler.Handle(query.ForecastQuery{})
	if err != nil {
		h.respondError(w, r, err, "Failed to compute forecast")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetShiftSignals handles GET /api/insights/shift-signals
func (h *AnalyticsHandler) GetShiftSignals(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	result, err := h.shiftSignalsHandler.Handle(query.ShiftSignalsQuery{From: from, To: to})
	if err != nil {
		h.respondError(w, r, err, "Failed to detect shift signals")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetLowDays handles GET /api/insights/low-days
func (h *AnalyticsHandler) GetLowDays(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	result, err := h.lowDaysHandler.Handle(query.LowDaysQuery{From: from, To: to})
	if err != nil {
		h.respondError(w, r, err, "Failed to detect low days")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetNearExpiry handles GET /api/items/near-expiry
func (h *AnalyticsHandler) GetNearExpiry(w http.ResponseWriter, r *http.Request) {
	items, err := h.nearExpiryHandler.Handle()
	if err != nil {
		h.respondError(w, r, err, "Failed to load expiring items")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// parseWindow reads optional from/to query params; it writes the error
// response itself and reports whether parsing succeeded.
func (h *AnalyticsHandler) parseWindow(w http.ResponseWriter, r *http.Request) (from, to time.Time, ok bool) {
	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = parseTimeParam(raw); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid from, expected RFC3339 or YYYY-MM-DD",
			})
			return from, to, false
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = parseTimeParam(raw); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid to, expected RFC3339 or YYYY-MM-DD",
			})
			return from, to, false
		}
	}
	return from, to, true
}

// respondError maps domain errors onto HTTP statuses
func (h *AnalyticsHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg(fallback)

	var integrityErr *domain.DataIntegrityError
	if errors.As(err, &integrityErr) {
		respondJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error:   integrityErr.Error(),
		})
		return
	}

	var configErr *domain.ConfigurationError
	if errors.As(err, &configErr) {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   configErr.Error(),
		})
		return
	}

	respondJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error:   fallback,
	})
}

// RegisterRoutes registers all analytics routes
func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/restock/check", h.metricsMiddleware("/api/restock/check", h.CheckRestock)).Methods("GET")
	router.HandleFunc("/api/restock/run", h.metricsMiddleware("/api/restock/run", h.RunRestock)).Methods("POST")
	router.HandleFunc("/api/stats/aggregate", h.metricsMiddleware("/api/stats/aggregate", h.AggregateWeek)).Methods("POST")
	router.HandleFunc("/api/stats/weekly", h.metricsMiddleware("/api/stats/weekly", h.GetWeeklyStats)).Methods("GET")
	router.HandleFunc("/api/forecast", h.metricsMiddleware("/api/forecast", h.GetForecast)).Methods("GET")
	router.HandleFunc("/api/insights/shift-signals", h.metricsMiddleware("/api/insights/shift-signals", h.GetShiftSignals)).Methods("GET")
	router.HandleFunc("/api/insights/low-days", h.metricsMiddleware("/api/insights/low-days", h.GetLowDays)).Methods("GET")
	router.HandleFunc("/api/items/near-expiry", h.metricsMiddleware("/api/items/near-expiry", h.GetNearExpiry)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *AnalyticsHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Analytics service is healthy",
		})
	}).Methods("GET")
}

// parseTimeParam accepts RFC3339 timestamps or bare dates
func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
