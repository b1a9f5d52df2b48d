package model

import "time"

// MessageModel mirrors the 'messages' table. The bigserial primary key is the
// canonical ordering of the chat log; rows are append-only.
type MessageModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"type:varchar(100);not null"`
	Text      string `gorm:"type:text;not null"`
	Timestamp string `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}
