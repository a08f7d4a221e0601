package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"photoshare/backend/internal/models"
)

func TestCanModify(t *testing.T) {
	owner := &models.User{Model: gorm.Model{ID: 1}}
	other := &models.User{Model: gorm.Model{ID: 2}}
	super := &models.User{Model: gorm.Model{ID: 3}, IsSuperuser: true}

	post := models.Post{UserID: owner.ID}
	comment := models.Comment{UserID: owner.ID}

	assert.True(t, CanModify(owner, post))
	assert.True(t, CanModify(owner, comment))
	assert.False(t, CanModify(other, post))
	assert.False(t, CanModify(other, comment))
	assert.True(t, CanModify(super, post))
	assert.True(t, CanModify(super, comment))
}
