package httpdto

import "relay-messenger/internal/domain/settings"

type SettingsResponse struct {
	Settings settings.UserSettings `json:"settings"`
}
