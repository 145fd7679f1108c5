package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// AuditDetail stores the structured payload of an audit event. Wrapping
// datatypes.JSON lets the column type vary per dialect; sqlserver has no
// native json type.
type AuditDetail struct {
	datatypes.JSON
}

// NewAuditDetail wraps an encoded JSON payload
func NewAuditDetail(raw []byte) AuditDetail {
	return AuditDetail{JSON: datatypes.JSON(raw)}
}

func (d AuditDetail) Value() (driver.Value, error) {
	return d.JSON.Value()
}

func (d *AuditDetail) Scan(value interface{}) error {
	return d.JSON.Scan(value)
}

// GormDBDataType picks the column type per database driver
func (AuditDetail) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "mysql", "sqlite":
		return "JSON"
	default:
		return "TEXT"
	}
}
