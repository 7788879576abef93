package models

import "time"

// AuditLog records an admin mutation
type AuditLog struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID   string    `gorm:"size:64;not null;index" json:"actorId"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	Entity    string    `gorm:"size:64;not null" json:"entity"`
	EntityID  string    `gorm:"size:64" json:"entityId"`
	Details   JSON      `json:"details"`
	CreatedAt time.Time `gorm:"index:idx_audit_logs_created_at" json:"createdAt"`
}

// TableName overrides the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// CalculatorUsage records one public calculator run
type CalculatorUsage struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Calculator string    `gorm:"size:32;not null;index" json:"calculator"`
	Inputs     JSON      `json:"inputs"`
	Result     JSON      `json:"result"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName overrides the table name for CalculatorUsage
func (CalculatorUsage) TableName() string {
	return "calculator_usage"
}
