package models

import "time"

// Reserved setting keys for the two shared passwords. Values are bcrypt
// hashes, never plaintext.
const (
	SettingKeyViewerPassword = "viewer_password"
	SettingKeyAdminPassword  = "admin_password"
)

// Setting is one key-value application setting.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
