package models

import "gorm.io/gorm"

// Like is a single boolean reaction per (user, post) pair: true is a like,
// false a dislike. The composite unique index caps the pair at one row;
// deleting either side cascades to the row.
type Like struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_like_user_post"`
	PostID uint `gorm:"not null;uniqueIndex:idx_like_user_post"`
	Like   bool `gorm:"not null;default:true"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Liked filters to rows where the flag is true.
func Liked(db *gorm.DB) *gorm.DB {
	return db.Where(map[string]interface{}{"like": true})
}

// Disliked filters to rows where the flag is false.
func Disliked(db *gorm.DB) *gorm.DB {
	return db.Where(map[string]interface{}{"like": false})
}
