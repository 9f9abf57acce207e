package utils

import (
	"edulink-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
)

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get("page")
	pageSizeStr := r.URL.Query().Get("page_size")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func BuildSessionListRequest(r *http.Request) *requests.SessionListFilter {
	return &requests.SessionListFilter{
		Status:   r.URL.Query().Get("status"),
		TutorID:  r.URL.Query().Get("tutor_id"),
		Subject:  r.URL.Query().Get("subject"),
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}
}

func BuildBookingListRequest(r *http.Request) *requests.BookingListFilter {
	return &requests.BookingListFilter{
		Status:        r.URL.Query().Get("status"),
		PaymentStatus: r.URL.Query().Get("payment_status"),
		SessionID:     r.URL.Query().Get("session_id"),
	}
}

func BuildForumListRequest(r *http.Request) *requests.ForumListFilter {
	return &requests.ForumListFilter{
		Search: r.URL.Query().Get("search"),
		Tag:    r.URL.Query().Get("tag"),
	}
}
