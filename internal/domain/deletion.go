package domain

import "time"

// Account deletion request statuses. A request is claimed by flipping
// pending -> processing so overlapping purge cycles cannot double-process it.
const (
	DeletionStatusPending    = "pending"
	DeletionStatusProcessing = "processing"
	DeletionStatusCompleted  = "completed"
)

// AccountDeletionRequest schedules an account purge after a grace period.
// Only the purge worker transitions status to completed.
type AccountDeletionRequest struct {
	ID               string     `json:"id" dynamodbav:"id"`
	UserID           string     `json:"user_id" dynamodbav:"user_id"`
	Status           string     `json:"status" dynamodbav:"status"`
	ScheduledPurgeAt int64      `json:"scheduled_purge_at" dynamodbav:"scheduled_purge_at"` // Unix seconds
	PurgedAt         *time.Time `json:"purged_at,omitempty" dynamodbav:"purged_at"`
	CreatedAt        time.Time  `json:"created_at" dynamodbav:"created_at"`
}

// PurgeResult is the per-user outcome of one purge cycle.
type PurgeResult struct {
	UserID  string `json:"userId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PurgeReport aggregates one purge cycle invocation.
type PurgeReport struct {
	ProcessedAt    time.Time     `json:"processedAt"`
	TotalProcessed int           `json:"totalProcessed"`
	Results        []PurgeResult `json:"results"`
}
