package models

import (
	"time"
)

// Paper represents a shared paper and its metadata. The Data column holds
// the extracted text body and is only used for keyword search.
type Paper struct {
	Pid         int       `gorm:"primaryKey;autoIncrement;column:pid"`
	Username    string    `gorm:"size:50;not null;index"`
	Title       string    `gorm:"size:50;check:length(title) <= 50"`
	BeginTime   time.Time `gorm:"not null;index"`
	Description string    `gorm:"size:500;check:length(description) <= 500"`
	Data        string    `gorm:"type:text;index"`

	// Relationships
	Tags  []Tag  `gorm:"foreignKey:Pid;references:Pid;constraint:OnDelete:CASCADE"`
	Likes []Like `gorm:"foreignKey:Pid;references:Pid;constraint:OnDelete:CASCADE"`
}
