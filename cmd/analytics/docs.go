package main

// @title Analytics Service API
// @version 1.0
// @description Consumption analytics and replenishment service over the warehouse booking ledger, with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/lagerkern/replenish
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/lagerkern/replenish/blob/main/LICENSE

// @host localhost:8084
// @BasePath /

// @tag.name Restock
// @tag.description Restock evaluation and order preparation endpoints

// @tag.name Stats
// @tag.description Weekly aggregation endpoints

// @tag.name Forecast
// @tag.description Demand forecasting endpoints

// @tag.name Insights
// @tag.description Activity anomaly detection endpoints

// @tag.name Items
// @tag.description Catalog item endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
