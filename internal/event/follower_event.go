package event

type FollowUserEvent struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}

func (FollowUserEvent) Op() string {
	return "follow_user"
}
