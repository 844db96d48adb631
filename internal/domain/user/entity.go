package user

import (
	"time"
)

// User represents the users table
type User struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	Phone     string     `gorm:"column:phone" json:"phone"`
	Name      string     `gorm:"column:name" json:"name"`
	AvatarURL *string    `gorm:"column:avatar_url" json:"avatar_url"`
	Bio       *string    `gorm:"column:bio" json:"bio"`
	IsOnline  bool       `gorm:"column:is_online" json:"is_online"`
	LastSeen  *time.Time `gorm:"column:last_seen" json:"last_seen"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// ProfileField names a column that update_profile may change.
type ProfileField string

const (
	FieldName      ProfileField = "name"
	FieldBio       ProfileField = "bio"
	FieldAvatarURL ProfileField = "avatar_url"
)

// ProfilePatch maps each supplied profile field to its new value.
// Fields missing from the map are left untouched.
type ProfilePatch map[ProfileField]string

// Columns converts the patch into a column/value map for a parameterized update.
func (p ProfilePatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, len(p))
	for field, value := range p {
		switch field {
		case FieldName, FieldBio, FieldAvatarURL:
			cols[string(field)] = value
		}
	}
	return cols
}
