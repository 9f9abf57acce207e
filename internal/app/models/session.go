package models

import "time"

type SessionStatus string

const (
	SessionStatusDraft      SessionStatus = "draft"
	SessionStatusPublished  SessionStatus = "published"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

// Session is a schedulable tutoring offering. CurrentParticipants is
// mutated only through the capacity manager when bookings confirm or are
// released; the 0 <= current <= max invariant is enforced there.
type Session struct {
	ID                  string        `json:"id" bson:"_id,omitempty"`
	TutorID             string        `json:"tutor_id" bson:"tutor_id"`
	Title               string        `json:"title" bson:"title"`
	Description         string        `json:"description,omitempty" bson:"description,omitempty"`
	Subject             string        `json:"subject" bson:"subject"`
	ScheduledDate       time.Time     `json:"scheduled_date" bson:"scheduled_date"`
	StartTime           string        `json:"start_time" bson:"start_time"`
	EndTime             string        `json:"end_time" bson:"end_time"`
	MaxParticipants     int           `json:"max_participants" bson:"max_participants"`
	CurrentParticipants int           `json:"current_participants" bson:"current_participants"`
	PricePerParticipant float64       `json:"price_per_participant" bson:"price_per_participant"`
	Status              SessionStatus `json:"status" bson:"status"`
	TimeModel           `bson:",inline"`
}

func (s *Session) HasCapacityFor(count int) bool {
	return s.CurrentParticipants+count <= s.MaxParticipants
}

func (s *Session) IsBookable() bool {
	return s.Status == SessionStatusPublished
}
