package entity

const MaxStatusLength = 140

// Status IDs are snowflakes, so they are time-ordered. They break the tie
// between statuses created within the same timestamp.
type Status struct {
	SnowFlakeBase

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Content string `gorm:"size:140"`
}
