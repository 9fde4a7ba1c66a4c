package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// AdviceModel represents the advices table in the database.
type AdviceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AlertType   string    `gorm:"type:varchar(50);not null;default:'general'"`
	Message     string    `gorm:"type:text;not null"`
	Priority    string    `gorm:"type:varchar(10);not null;default:'normal'"`
	GeneratedBy string    `gorm:"type:varchar(10);not null"`
	Read        bool      `gorm:"column:leido;not null;default:false"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the AdviceModel.
func (AdviceModel) TableName() string {
	return "advices"
}

// ToEntity converts an AdviceModel to a domain Advice entity.
func (m *AdviceModel) ToEntity() *entity.Advice {
	return &entity.Advice{
		ID:          m.ID,
		UserID:      m.UserID,
		AlertType:   m.AlertType,
		Message:     m.Message,
		Priority:    entity.AdvicePriority(m.Priority),
		GeneratedBy: entity.AdviceAuthor(m.GeneratedBy),
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}

// AdviceModelFromEntity creates an AdviceModel from a domain Advice entity.
func AdviceModelFromEntity(a *entity.Advice) *AdviceModel {
	return &AdviceModel{
		ID:          a.ID,
		UserID:      a.UserID,
		AlertType:   a.AlertType,
		Message:     a.Message,
		Priority:    string(a.Priority),
		GeneratedBy: string(a.GeneratedBy),
		Read:        a.Read,
		CreatedAt:   a.CreatedAt,
	}
}
