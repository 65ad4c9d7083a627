/**
 * @description
 * Tournament database model.
 * Maps to the 'tournaments' table; one row per provider sighting of a tournament.
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

// Tournament is a provider-scoped tournament row keyed on (source_type, source_id).
type Tournament struct {
	ID          string         `gorm:"column:id;primaryKey" json:"id"`
	SourceType  string         `gorm:"column:source_type;uniqueIndex:uq_tournaments_source;not null" json:"source_type"`
	SourceID    int64          `gorm:"column:source_id;uniqueIndex:uq_tournaments_source;not null" json:"source_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Slug        string         `gorm:"column:slug" json:"slug,omitempty"`
	Tier        string         `gorm:"column:tier" json:"tier,omitempty"`
	TierRank    *int           `gorm:"column:tier_rank" json:"tier_rank,omitempty"`
	PrizePool   *int64         `gorm:"column:prize_pool" json:"prize_pool,omitempty"`
	Status      string         `gorm:"column:status" json:"status,omitempty"`
	StartDate   *time.Time     `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate     *time.Time     `gorm:"column:end_date" json:"end_date,omitempty"`
	RawMetadata datatypes.JSON `gorm:"column:raw_metadata" json:"raw_metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by Tournament to `tournaments`
func (Tournament) TableName() string {
	return "tournaments"
}

// BeforeCreate assigns a fresh id when none was provided
func (t *Tournament) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
