package constvars

type ContextKey string

const (
	ContextRequestIDKey ContextKey = "request_id"
	ContextUserIDKey    ContextKey = "user_id"
	ContextUserRoleKey  ContextKey = "user_role"
	ContextSessionIDKey ContextKey = "auth_session_id"
)

const (
	MongoCollectionUsers         = "users"
	MongoCollectionSessions      = "sessions"
	MongoCollectionBookings      = "bookings"
	MongoCollectionPayments      = "payments"
	MongoCollectionInvoices      = "invoices"
	MongoCollectionNotifications = "notifications"
	MongoCollectionForumPosts    = "forum_posts"
	MongoCollectionForumReplies  = "forum_replies"
)

const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"

	// Retry budgets and policy windows shared by the payment ledger
	// and the notification dispatcher.
	DefaultMaxRetries            = 3
	PaymentRefundWindowInDays    = 30
	NotificationExpiryInDays     = 30
	NotificationBackoffBaseInMin = 5
)

const (
	RedisSessionKeyPrefix = "edulink:session:"
)
