package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a registered account. Email is the identity key.
type User struct {
	gorm.Model
	Email        string `gorm:"size:255;unique;not null"`
	FirstName    string `gorm:"size:100;not null"`
	LastName     string `gorm:"size:100;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	ProfilePhoto string `gorm:"size:512"`
	Description  string `gorm:"type:text"`
	Website      string `gorm:"size:512"`

	IsSuperuser bool `gorm:"not null;default:false"`

	// Asymmetric follow relation: A following B says nothing about B.
	Following []*User `gorm:"many2many:user_following;joinForeignKey:UserID;joinReferences:FollowingID"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the domain
// part, leaving the local part untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// NewUser builds a regular user with a normalized email and a bcrypt
// password hash. The caller persists it.
func NewUser(email, firstName, lastName, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		Email:        NormalizeEmail(email),
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
	}, nil
}

// NewSuperuser builds an elevated user. Superusers may edit or delete any
// post or comment.
func NewSuperuser(email, firstName, lastName, password string) (*User, error) {
	user, err := NewUser(email, firstName, lastName, password)
	if err != nil {
		return nil, err
	}
	user.IsSuperuser = true
	return user, nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FullName is the display name used in responses.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
