package entity

const (
	MaxNameLength     = 50
	MaxEmailLength    = 255
	MinPasswordLength = 6
)

type User struct {
	Base

	Name         string `gorm:"size:50"`
	Email        string `gorm:"size:255;unique"`
	PasswordHash string

	// ActivationToken is assigned exactly once, before the record is first
	// persisted. It never changes afterwards.
	ActivationToken string
	IsActivated     bool
}
