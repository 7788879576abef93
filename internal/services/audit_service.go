package services

import (
	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Audit actions
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
	AuditStatus = "status"
	AuditRole   = "role"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// RecordAudit writes an audit log row for an admin mutation.
// The mutation has already succeeded, so a failure here is logged and swallowed.
func RecordAudit(db *gorm.DB, actorID, action, entity, entityID string, details interface{}) {
	entry := models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}
	if details != nil {
		j, err := models.NewJSON(details)
		if err != nil {
			logging.L().Warn("audit details not serializable", zap.String("entity", entity), zap.Error(err))
		} else {
			entry.Details = j
		}
	}

	if err := db.Create(&entry).Error; err != nil {
		logging.L().Error("failed to write audit log",
			zap.String("actor", actorID),
			zap.String("action", action),
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

// ListAuditLogs returns the most recent audit entries. limit is clamped to [1, 1000], 0 means 100.
func ListAuditLogs(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}

	query := db.Model(&models.AuditLog{})
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_audit_logs_created_at"))
	}

	logs := []models.AuditLog{}
	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
