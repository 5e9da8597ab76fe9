package entity

import "time"

// Follower is a directed edge of the follow graph, meaning FollowerID
// observes FollowingID's statuses. The composite primary key makes duplicate
// edges impossible at the storage layer; the two semantic views (followers
// of a user, users a user follows) are two queries over this one table with
// the filter column swapped.
type Follower struct {
	CreatedAt time.Time

	FollowerID string `gorm:"primaryKey"`
	Follower   User   `gorm:"foreignKey:FollowerID"`

	FollowingID string `gorm:"primaryKey;index"`
	Following   User   `gorm:"foreignKey:FollowingID"`
}
