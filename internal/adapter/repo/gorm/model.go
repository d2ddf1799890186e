package gormrepo

import "time"

// memoryRecordRow is the journal table shape. Seq gives listings a stable
// newest-first order even when one cycle appends several records with the
// same timestamp.
type memoryRecordRow struct {
	Seq        uint64    `gorm:"primaryKey;autoIncrement"`
	RecordID   string    `gorm:"size:36;uniqueIndex"`
	OccurredAt time.Time `gorm:"index"`
	Kind       string    `gorm:"size:16;index"`
	Content    string
	Valence    string `gorm:"size:16"`
	Tags       []byte
	Details    []byte
}

func (memoryRecordRow) TableName() string { return "memory_records" }
