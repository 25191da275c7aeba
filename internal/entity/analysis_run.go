package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// RunStatus tracks the lifecycle of an analysis run.
// Transitions are strictly forward; completed and failed are terminal.
type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// CanTransitionTo reports whether moving to the given status is a legal
// forward transition.
func (s RunStatus) CanTransitionTo(next RunStatus) bool {
	switch s {
	case RunStatusPending:
		return next == RunStatusProcessing || next == RunStatusCompleted || next == RunStatusFailed
	case RunStatusProcessing:
		return next == RunStatusCompleted || next == RunStatusFailed
	default:
		return false
	}
}

// IsTerminal reports whether the status allows no further transitions.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusCompleted || s == RunStatusFailed
}

// AnalysisRun is the unit-of-work record for one pipeline invocation.
type AnalysisRun struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Status          RunStatus      `gorm:"not null" json:"status"`
	PostsAnalyzed   int            `json:"posts_analyzed"`
	ClustersCreated int            `json:"clusters_created"`
	StartedAt       time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt     sql.NullTime   `json:"completed_at"`
	DurationMs      int64          `json:"duration_ms"`
	ErrorMessage    sql.NullString `json:"error_message"`
	Stats           datatypes.JSON `json:"stats"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the AnalysisRun model.
func (AnalysisRun) TableName() string {
	return "analysis_runs"
}
