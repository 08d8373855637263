package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Caption   string    `gorm:"type:text;not null;default:''" json:"caption"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	FileType  string    `gorm:"type:varchar(20);not null" json:"file_type"`
	FileName  string    `gorm:"type:varchar(255);not null" json:"file_name"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
