package settings

import (
	"time"
)

// UserSettings represents the user_settings table
type UserSettings struct {
	ID                int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID            int64     `gorm:"column:user_id" json:"user_id"`
	MessageSound      bool      `gorm:"column:message_sound" json:"message_sound"`
	CallSound         bool      `gorm:"column:call_sound" json:"call_sound"`
	PushNotifications bool      `gorm:"column:push_notifications" json:"push_notifications"`
	ShowOnlineStatus  bool      `gorm:"column:show_online_status" json:"show_online_status"`
	SendReadReceipts  bool      `gorm:"column:send_read_receipts" json:"send_read_receipts"`
	TwoFactorAuth     bool      `gorm:"column:two_factor_auth" json:"two_factor_auth"`
	DarkTheme         bool      `gorm:"column:dark_theme" json:"dark_theme"`
	Animations        bool      `gorm:"column:animations" json:"animations"`
	HDQuality         bool      `gorm:"column:hd_quality" json:"hd_quality"`
	NoiseCancellation bool      `gorm:"column:noise_cancellation" json:"noise_cancellation"`
	AutoAnswer        bool      `gorm:"column:auto_answer" json:"auto_answer"`
	UpdatedAt         time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// Field is one allow-listed settings column.
type Field string

const (
	FieldMessageSound      Field = "message_sound"
	FieldCallSound         Field = "call_sound"
	FieldPushNotifications Field = "push_notifications"
	FieldShowOnlineStatus  Field = "show_online_status"
	FieldSendReadReceipts  Field = "send_read_receipts"
	FieldTwoFactorAuth     Field = "two_factor_auth"
	FieldDarkTheme         Field = "dark_theme"
	FieldAnimations        Field = "animations"
	FieldHDQuality         Field = "hd_quality"
	FieldNoiseCancellation Field = "noise_cancellation"
	FieldAutoAnswer        Field = "auto_answer"
)

// Fields lists every allow-listed field in column order.
var Fields = []Field{
	FieldMessageSound,
	FieldCallSound,
	FieldPushNotifications,
	FieldShowOnlineStatus,
	FieldSendReadReceipts,
	FieldTwoFactorAuth,
	FieldDarkTheme,
	FieldAnimations,
	FieldHDQuality,
	FieldNoiseCancellation,
	FieldAutoAnswer,
}

// ParseField reports whether name is an allow-listed field.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Patch holds the new value of every supplied field.
type Patch map[Field]bool

// Columns converts the patch into a column/value map for a parameterized update.
func (p Patch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, len(p))
	for field, value := range p {
		if _, ok := ParseField(string(field)); ok {
			cols[string(field)] = value
		}
	}
	return cols
}

// Defaults returns the settings row created on first access.
func Defaults(userID int64) UserSettings {
	return UserSettings{
		UserID:            userID,
		MessageSound:      true,
		CallSound:         true,
		PushNotifications: true,
		ShowOnlineStatus:  true,
		SendReadReceipts:  true,
		TwoFactorAuth:     false,
		DarkTheme:         false,
		Animations:        true,
		HDQuality:         true,
		NoiseCancellation: true,
		AutoAnswer:        false,
	}
}

// Apply writes every field of the patch onto s.
func (s *UserSettings) Apply(p Patch) {
	for field, value := range p {
		switch field {
		case FieldMessageSound:
			s.MessageSound = value
		case FieldCallSound:
			s.CallSound = value
		case FieldPushNotifications:
			s.PushNotifications = value
		case FieldShowOnlineStatus:
			s.ShowOnlineStatus = value
		case FieldSendReadReceipts:
			s.SendReadReceipts = value
		case FieldTwoFactorAuth:
			s.TwoFactorAuth = value
		case FieldDarkTheme:
			s.DarkTheme = value
		case FieldAnimations:
			s.Animations = value
		case FieldHDQuality:
			s.HDQuality = value
		case FieldNoiseCancellation:
			s.NoiseCancellation = value
		case FieldAutoAnswer:
			s.AutoAnswer = value
		}
	}
}
