/**
 * @description
 * Team database model.
 * Maps to the 'teams' table; one row per provider sighting of a team.
 *
 * @dependencies
 * - gorm.io/gorm
 * - gorm.io/datatypes
 * - github.com/google/uuid
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Team is a provider-scoped team row. Identity is (source_type, source_id);
// the same real-world team seen by two providers stays two rows.
type Team struct {
	ID          string         `gorm:"column:id;primaryKey" json:"id"`
	SourceType  string         `gorm:"column:source_type;uniqueIndex:uq_teams_source;not null" json:"source_type"`
	SourceID    int64          `gorm:"column:source_id;uniqueIndex:uq_teams_source;not null" json:"source_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Slug        string         `gorm:"column:slug" json:"slug,omitempty"`
	CountryCode string         `gorm:"column:country_code" json:"country_code,omitempty"`
	LogoURL     string         `gorm:"column:logo_url" json:"logo_url,omitempty"`
	RawMetadata datatypes.JSON `gorm:"column:raw_metadata" json:"raw_metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by Team to `teams`
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate assigns a fresh id when none was provided
func (t *Team) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
