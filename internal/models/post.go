package models

import "gorm.io/gorm"

// Post is a photographed entry authored by one user. The owning user cannot
// be deleted while posts exist (RESTRICT); deleting a post cascades to its
// comments and likes.
type Post struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	Content string `gorm:"size:400;not null"`

	// Image reference path under the media root, with dimensions derived
	// at upload time.
	ImagePath   string `gorm:"size:512;not null"`
	ImageWidth  int    `gorm:"not null;default:0"`
	ImageHeight int    `gorm:"not null;default:0"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// OwnerID implements Ownable.
func (p Post) OwnerID() uint { return p.UserID }

// Newest orders posts newest first, the default feed ordering.
func Newest(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
