package services

import (
	"fmt"
	"log"

	"github.com/moodlog/api/internal/config"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a health check of the service and its database.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
		return result
	}

	if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
		return result
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase

	return result
}
