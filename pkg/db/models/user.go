package models

// Field length bounds enforced by the store before any insert.
// SQLite does not reject oversized VARCHAR values on its own.
const (
	MaxUsernameLen    = 50
	MaxPasswordLen    = 32
	MaxTitleLen       = 50
	MaxDescriptionLen = 500
	MaxTagnameLen     = 50
)

// User represents a registered account. Passwords are stored verbatim;
// hashing is the responsibility of an outer layer, if any.
type User struct {
	Username string `gorm:"primaryKey;size:50;check:length(username) <= 50"`
	Password string `gorm:"size:32;not null;check:length(password) <= 32"`

	// Relationships
	Papers []Paper `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
	Likes  []Like  `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}
