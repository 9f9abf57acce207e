package requests

type Pagination struct {
	Page     int
	PageSize int
}

type SessionListFilter struct {
	Status   string
	TutorID  string
	Subject  string
	DateFrom string
	DateTo   string
}

type BookingListFilter struct {
	Status        string
	PaymentStatus string
	SessionID     string
	StudentID     string
	TutorID       string
}

type ForumListFilter struct {
	Search string
	Tag    string
}
