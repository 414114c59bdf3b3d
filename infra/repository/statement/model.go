package statement

import (
	"time"

	"github.com/google/uuid"
)

// Statement represents a ledger record in the database.
//
// Seq is the insertion sequence and orders rows that share a timestamp.
type Statement struct {
	Seq         int64      `gorm:"primaryKey;autoIncrement"`
	ID          uuid.UUID  `gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID      uuid.UUID  `gorm:"type:varchar(36);index;not null"`
	SenderID    *uuid.UUID `gorm:"type:varchar(36);index"`
	Amount      int64      `gorm:"not null"`
	Description string     `gorm:"size:255;not null"`
	Type        string     `gorm:"size:16;not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

// TableName specifies the table name for the Statement model.
func (Statement) TableName() string {
	return "statements"
}
