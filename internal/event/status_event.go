package event

type StatusCreatedEvent struct {
	StatusID string `json:"status_id"`
	UserID   string `json:"user_id"`
}

func (StatusCreatedEvent) Op() string {
	return "status_created"
}
