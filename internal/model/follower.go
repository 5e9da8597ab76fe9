package model

// FollowRequest accepts either a single user id or a collection of them. The
// two fields are merged before the edges are inserted.
type FollowRequest struct {
	UserID  string   `json:"user_id"`
	UserIDs []string `json:"user_ids"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	UserID  string   `json:"user_id"`
	UserIDs []string `json:"user_ids"`
}

type UnfollowResponse struct{}

type IsFollowingRequest struct {
	UserID string `json:"user_id"`
}

type IsFollowingResponse struct {
	Following bool `json:"following"`
}

type GetFollowersRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetFollowersResponse struct {
	Users []User `json:"users"`
}

type GetFollowingsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetFollowingsResponse struct {
	Users []User `json:"users"`
}
