package entity

import "time"

// PasswordReset keeps only a digest of the reset token. The plaintext token
// exists nowhere but in the notification handed to the user.
type PasswordReset struct {
	Email       string `gorm:"primaryKey;size:255"`
	TokenDigest string
	ExpiredAt   time.Time
	CreatedAt   time.Time
}
