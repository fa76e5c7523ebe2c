package services

import (
	"testing"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	post := &models.Post{UserID: 3}
	profile := &models.PetProfile{User: 4}

	tests := []struct {
		name      string
		entity    Owned
		requester uint
		want      bool
	}{
		{"post owner", post, 3, true},
		{"post other user", post, 4, false},
		{"profile owner", profile, 4, true},
		{"anonymous requester", post, 0, false},
		{"nil entity", nil, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModify(tt.entity, tt.requester))
		})
	}
}
