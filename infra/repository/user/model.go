package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database.
//
// IDs are stored as 36-character strings so the same model migrates on
// postgres, mysql and sqlite.
type User struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Password  string    `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
