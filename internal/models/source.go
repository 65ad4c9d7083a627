/**
 * @description
 * DataSource database model.
 * Registry of external providers; maps to the 'data_sources' table.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DataSource is a registered provider feed. Rows are immutable after creation
// except for the activation flag.
type DataSource struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by DataSource to `data_sources`
func (DataSource) TableName() string {
	return "data_sources"
}

// BeforeCreate assigns a fresh id when none was provided
func (s *DataSource) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
