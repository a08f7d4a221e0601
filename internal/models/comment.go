package models

import "gorm.io/gorm"

// Comment belongs to one user and one post. It goes away with its post;
// its author cannot be deleted while it exists.
type Comment struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	PostID  uint   `gorm:"not null;index"`
	Content string `gorm:"size:200;not null"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Post Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// OwnerID implements Ownable.
func (c Comment) OwnerID() uint { return c.UserID }
