package entity

import "time"

// SequenceCounter is a named monotonic counter row. Allocation happens via a
// single atomic upsert in the repository; application code never reads and
// writes the value in separate statements.
type SequenceCounter struct {
	Name      string    `gorm:"primaryKey;size:50" json:"name"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
