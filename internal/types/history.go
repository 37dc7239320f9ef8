package types

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one successfully generated report input.
type HistoryEntry struct {
	ID        uuid.UUID   `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Data      ReportInput `json:"data"`
}
