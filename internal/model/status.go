package model

type Status struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	Author    User   `json:"author"`
}

type CreateStatusRequest struct {
	Content string `json:"content"`
}

type CreateStatusResponse struct {
	Status Status `json:"status"`
}

type DeleteStatusRequest struct {
	ID string `json:"id"`
}

type DeleteStatusResponse struct{}

type GetUserStatusesRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUserStatusesResponse struct {
	Statuses []Status `json:"statuses"`
}

type GetFeedRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetFeedResponse struct {
	Statuses []Status `json:"statuses"`
}
