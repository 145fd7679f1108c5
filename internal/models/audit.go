package models

import (
	"time"
)

// AuditEvent records one mutating operation against the spreadsheet store.
// The audit trail is local infrastructure; the spreadsheets remain the
// system of record.
type AuditEvent struct {
	EventID   string      `gorm:"primaryKey;size:36"`
	Action    string      `gorm:"size:64;not null;index"`
	ClientID  string      `gorm:"size:255;index"`
	FormID    string      `gorm:"size:128"`
	Detail    AuditDetail `gorm:"type:json"`
	CreatedAt time.Time
}

// TableName overrides the table name for AuditEvent
func (AuditEvent) TableName() string {
	return "audit_events"
}
