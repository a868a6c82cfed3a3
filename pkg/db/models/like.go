package models

import (
	"time"
)

// Like is a timestamped endorsement of a paper by a user. The composite
// primary key is the arbitration mechanism for concurrent double-likes.
type Like struct {
	Pid      int       `gorm:"primaryKey;autoIncrement:false;column:pid"`
	Username string    `gorm:"primaryKey;size:50"`
	LikeTime time.Time `gorm:"not null"`
}
