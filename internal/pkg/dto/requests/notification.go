package requests

type CreateNotification struct {
	RecipientID string   `json:"recipient_id" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Message     string   `json:"message" validate:"required"`
	Channels    []string `json:"channels" validate:"required,min=1,dive,oneof=email sms push"`
	ExpiresAt   string   `json:"expires_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
