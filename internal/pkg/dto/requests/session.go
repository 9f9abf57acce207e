package requests

type CreateSession struct {
	Title               string  `json:"title" validate:"required,max=200"`
	Description         string  `json:"description"`
	Subject             string  `json:"subject" validate:"required"`
	ScheduledDate       string  `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	StartTime           string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime             string  `json:"end_time" validate:"required,datetime=15:04"`
	MaxParticipants     int     `json:"max_participants" validate:"required,gt=0"`
	PricePerParticipant float64 `json:"price_per_participant" validate:"gte=0"`
}

type UpdateSession struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Subject             string   `json:"subject"`
	ScheduledDate       string   `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime           string   `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime             string   `json:"end_time" validate:"omitempty,datetime=15:04"`
	MaxParticipants     *int     `json:"max_participants" validate:"omitempty,gt=0"`
	PricePerParticipant *float64 `json:"price_per_participant" validate:"omitempty,gte=0"`
}
