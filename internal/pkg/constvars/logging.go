package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingUserIDKey       = "user_id"
	LoggingSessionIDKey    = "session_id"
	LoggingBookingIDKey    = "booking_id"
	LoggingPaymentIDKey    = "payment_id"
	LoggingInvoiceIDKey    = "invoice_id"
	LoggingReferenceKey    = "booking_reference"
	LoggingEventTypeKey    = "event_type"
	LoggingChannelKey      = "channel"
	LoggingResponseCount   = "response_count"
	LoggingErrorTypeKey    = "error_type"
	LoggingQueueKey        = "queue"
	LoggingObjectNameKey   = "object_name"
	LoggingCollectionKey   = "collection"
	LoggingRecipientIDKey  = "recipient_id"
	LoggingParticipantsKey = "participants"
)
