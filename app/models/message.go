package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultMessageName  = "Unknown"
	DefaultMessageEmail = "No Email"
	DefaultMessageBody  = "No Message"
	DefaultReplySubject = "Reply from Vendoz"
)

type Message struct {
	ID      string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	Name    string         `gorm:"size:255;not null" json:"name"`
	Email   string         `gorm:"size:255;not null" json:"email"`
	Message string         `gorm:"type:text;not null" json:"message"`
	Date    time.Time      `gorm:"index" json:"date"`
	Replies []MessageReply `gorm:"foreignKey:MessageID" json:"replies"`
}

type MessageReply struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	MessageID string    `gorm:"size:36;not null;index" json:"-"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Date      time.Time `json:"date"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if strings.TrimSpace(m.Name) == "" {
		m.Name = DefaultMessageName
	}
	if strings.TrimSpace(m.Email) == "" {
		m.Email = DefaultMessageEmail
	}
	if strings.TrimSpace(m.Message) == "" {
		m.Message = DefaultMessageBody
	}
	if m.Date.IsZero() {
		m.Date = tx.NowFunc()
	}
	return
}

func (r *MessageReply) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if strings.TrimSpace(r.Subject) == "" {
		r.Subject = DefaultReplySubject
	}
	if r.Date.IsZero() {
		r.Date = tx.NowFunc()
	}
	return
}
