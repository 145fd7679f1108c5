package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mindfulway/intake-backend/internal/models"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// Audit actions recorded for mutating operations
const (
	ActionClientCreate = "client.create"
	ActionFormSubmit   = "form.submit"
)

// RecordAudit appends an event to the local audit trail. The trail is
// advisory: failures are logged and swallowed so an audit outage never
// fails a request that already mutated the spreadsheets.
func RecordAudit(db *gorm.DB, log *logger.Logger, action, clientID, formID string, detail map[string]interface{}) {
	if db == nil {
		return
	}

	event := models.AuditEvent{
		EventID:   uuid.New().String(),
		Action:    action,
		ClientID:  clientID,
		FormID:    formID,
		CreatedAt: time.Now().UTC(),
	}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			log.Warn("failed to encode audit detail", "action", action, "error", err)
		} else {
			event.Detail = models.NewAuditDetail(raw)
		}
	}

	if err := db.Create(&event).Error; err != nil {
		log.Warn("failed to record audit event", "action", action, "client_id", clientID, "error", err)
	}
}

// RecentAuditEvents returns the newest events for an action, most recent
// first. Used by the schema inspection tooling and operational queries.
func RecentAuditEvents(db *gorm.DB, action string, limit int) ([]models.AuditEvent, error) {
	var events []models.AuditEvent
	query := db.Order("created_at DESC").Limit(limit)
	if action != "" {
		query = query.Where("action = ?", action)
	}
	err := query.Find(&events).Error
	return events, err
}
