package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/education-platform/internal/models"
)

func strptr(s string) *string { return &s }

func TestIsOwner(t *testing.T) {
	tests := []struct {
		name     string
		userUID  string
		ownerUID *string
		want     bool
	}{
		{
			name:     "пользователь владеет объектом",
			userUID:  "uid-1",
			ownerUID: strptr("uid-1"),
			want:     true,
		},
		{
			name:     "чужой объект",
			userUID:  "uid-1",
			ownerUID: strptr("uid-2"),
			want:     false,
		},
		{
			name:     "объект без владельца",
			userUID:  "uid-1",
			ownerUID: nil,
			want:     false,
		},
		{
			name:     "пустой uid пользователя",
			userUID:  "",
			ownerUID: strptr(""),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOwner(tt.userUID, tt.ownerUID))
		})
	}
}

func TestIsOwnerOrModerator(t *testing.T) {
	tests := []struct {
		name     string
		userUID  string
		role     string
		ownerUID *string
		want     bool
	}{
		{
			name:     "владелец с обычной ролью",
			userUID:  "uid-1",
			role:     models.RoleUser,
			ownerUID: strptr("uid-1"),
			want:     true,
		},
		{
			name:     "модератор для чужого объекта",
			userUID:  "uid-1",
			role:     models.RoleModerator,
			ownerUID: strptr("uid-2"),
			want:     true,
		},
		{
			name:     "администратор для чужого объекта",
			userUID:  "uid-1",
			role:     models.RoleAdmin,
			ownerUID: strptr("uid-2"),
			want:     true,
		},
		{
			name:     "обычный пользователь для чужого объекта",
			userUID:  "uid-1",
			role:     models.RoleUser,
			ownerUID: strptr("uid-2"),
			want:     false,
		},
		{
			name:     "обычный пользователь для объекта без владельца",
			userUID:  "uid-1",
			role:     models.RoleUser,
			ownerUID: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOwnerOrModerator(tt.userUID, tt.role, tt.ownerUID))
		})
	}
}

func TestRolePredicates(t *testing.T) {
	assert.True(t, IsModerator(models.RoleModerator))
	assert.False(t, IsModerator(models.RoleUser))
	assert.False(t, IsModerator(models.RoleAdmin))

	assert.True(t, IsNotModerator(models.RoleUser))
	assert.True(t, IsNotModerator(models.RoleAdmin))
	assert.False(t, IsNotModerator(models.RoleModerator))

	assert.True(t, IsAdmin(models.RoleAdmin))
	assert.False(t, IsAdmin(models.RoleModerator))
}

func TestSeesAll(t *testing.T) {
	assert.True(t, SeesAll(models.RoleModerator))
	assert.True(t, SeesAll(models.RoleAdmin))
	assert.False(t, SeesAll(models.RoleUser))
	assert.False(t, SeesAll(""))
}
