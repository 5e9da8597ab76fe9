package event

type UserRegisteredEvent struct {
	UserID          string `json:"user_id"`
	Email           string `json:"email"`
	ActivationToken string `json:"activation_token"`
}

func (UserRegisteredEvent) Op() string {
	return "user_registered"
}

type PasswordResetRequestedEvent struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

func (PasswordResetRequestedEvent) Op() string {
	return "password_reset_requested"
}
