package models

import (
	"fmt"
	"time"
)

// LabelInfo caches the AI-generated overview for a record label so it is
// generated at most once per label (until the cache is invalidated).
type LabelInfo struct {
	ID              uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LabelName       string     `gorm:"column:label_name;type:varchar(255);not null;uniqueIndex:idx_label_info_label_name" json:"label_name"`
	Overview        *string    `gorm:"column:overview;type:text" json:"overview"`
	GeneratedBy     string     `gorm:"column:generated_by;type:varchar(50);default:gemini-flash-latest" json:"generated_by"`
	GeneratedAt     *time.Time `gorm:"column:generated_at" json:"generated_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`
	CacheValid      *bool      `gorm:"column:cache_valid;default:true" json:"cache_valid"`
	GenerationError *string    `gorm:"column:generation_error;type:text" json:"generation_error"`
}

func (LabelInfo) TableName() string {
	return "label_info"
}

// Valid reports whether the cached overview may still be served.
func (li *LabelInfo) Valid() bool {
	return li.CacheValid == nil || *li.CacheValid
}

// ToDict converts the cached entry for JSON responses.
func (li *LabelInfo) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"label_name":   li.LabelName,
		"overview":     nullable(li.Overview),
		"generated_by": li.GeneratedBy,
		"generated_at": isoTime(li.GeneratedAt),
		"updated_at":   li.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (li *LabelInfo) String() string {
	return fmt.Sprintf("<LabelInfo %s>", li.LabelName)
}
