package Models

import (
	"time"

	"gorm.io/datatypes"
)

// RequestLog is one handled HTTP request, persisted by the logging middleware.
type RequestLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"index" json:"timestamp"`
	Method    string         `json:"method"`
	Path      string         `json:"path"`
	Status    int            `json:"status"`
	LatencyMS int64          `json:"latencyMs"`
	IP        string         `json:"ip"`
	UserID    uint           `json:"userId"`
	Details   datatypes.JSON `json:"details"`
}
