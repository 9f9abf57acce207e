package constvars

// Client-facing messages. Kept generic for anything that is not the
// caller's fault.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "You are not logged in, please log in first"
	ErrClientInvalidEmailOrPassword        = "Invalid email or password"
	ErrClientEmailAlreadyExists            = "Email is already registered"
	ErrClientUsernameAlreadyExists         = "Username is already taken"

	ErrClientSessionNotBookable      = "This session is not open for booking"
	ErrClientSessionFull             = "This session has no remaining capacity"
	ErrClientSessionHasBookings      = "This session still has active bookings"
	ErrClientNoParticipantsToRelease = "This session has no participants to release"
	ErrClientBookingInvalidState     = "This booking cannot be changed from its current state"
	ErrClientRefundAlreadyProcessed  = "A refund has already been processed for this booking"
	ErrClientRefundExceedsPaid       = "Refund amount exceeds the amount paid"
	ErrClientPaymentNotRefundable    = "This payment is not eligible for a refund"
	ErrClientRetryExhausted          = "Retry budget has been exhausted"
	ErrClientInvoiceOverpayment      = "Payment would exceed the invoice total"
	ErrClientInvoiceNotCancellable   = "A paid or refunded invoice cannot be cancelled"
	ErrClientInvoiceNotRefundable    = "Only a paid invoice can be refunded"
	ErrClientInvoiceNotPayable       = "Payments cannot be recorded on this invoice"
	ErrClientInvoiceAlreadyExists    = "An invoice already exists for this booking"
	ErrClientPaymentInvalidState     = "This payment cannot be changed from its current state"
	ErrClientInvoiceInvalidState     = "This invoice cannot be changed from its current state"
	ErrClientSessionInvalidState     = "This session cannot be changed from its current state"
)

// Developer-facing messages, logged but never returned to production
// clients.
const (
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON         = "failed to marshal value to JSON"
	ErrDevURLParamIDValidationFail  = "URL parameter '%s' is missing or invalid"
	ErrDevServerDeadlineExceeded    = "request deadline exceeded"
	ErrDevMissingRequestID          = "request ID missing from context"
	ErrDevFailedToHashPassword      = "failed to hash password"
	ErrDevInvalidCredentials        = "credentials do not match any user"
	ErrDevEmailAlreadyExists        = "email already exists"
	ErrDevUsernameAlreadyExists     = "username already exists"
	ErrDevAuthTokenMissing          = "authorization token missing"
	ErrDevAuthTokenInvalid          = "authorization token invalid or expired"
	ErrDevAuthGenerateToken         = "failed to generate JWT"
	ErrDevAuthSigningMethod         = "unexpected JWT signing method"
	ErrDevAuthInvalidSession        = "session not found or expired"
	ErrDevAuthRoleForbidden         = "actor role is not allowed for this endpoint"
	ErrDevResourceNotFound          = "%s not found"
	ErrDevSessionNotPublished       = "session is not in published status"
	ErrDevSessionCapacityExceeded   = "session capacity exceeded"
	ErrDevSessionHasActiveBookings  = "session has active bookings"
	ErrDevSessionNoParticipants     = "current participant count is already zero"
	ErrDevBookingIllegalTransition  = "illegal booking transition from '%s' on '%s'"
	ErrDevRefundAlreadyProcessed    = "cancellation refund already processed"
	ErrDevRefundExceedsPaid         = "refund amount exceeds amount paid"
	ErrDevPaymentNotRefundable      = "payment is not refundable"
	ErrDevRetryExhausted            = "retry count reached max retries"
	ErrDevInvoiceOverpayment        = "payment exceeds invoice total"
	ErrDevInvoiceNotCancellable     = "invoice is paid or refunded"
	ErrDevInvoiceNotRefundable      = "invoice is not paid"
	ErrDevInvoiceNotPayable         = "invoice is cancelled or refunded"
	ErrDevInvoiceAlreadyExists      = "booking already has an invoice"
	ErrDevPaymentIllegalTransition  = "illegal payment transition from '%s' on '%s'"
	ErrDevInvoiceIllegalTransition  = "illegal invoice transition from '%s' on '%s'"
	ErrDevSessionIllegalTransition  = "illegal session transition from '%s' on '%s'"
	ErrDevNotificationNotRetryable  = "notification is not in failed status"
	ErrDevDBFailedToFindDocument    = "failed to find document in MongoDB"
	ErrDevDBFailedToInsertDocument  = "failed to insert document into MongoDB"
	ErrDevDBFailedToUpdateDocument  = "failed to update document in MongoDB"
	ErrDevDBFailedToDeleteDocument  = "failed to delete document in MongoDB"
	ErrDevDBFailedToIterateDocs     = "failed to iterate MongoDB cursor"
	ErrDevDBFailedToCountDocuments  = "failed to count documents in MongoDB"
	ErrDevDBStringNotObjectID       = "string is not a valid MongoDB ObjectID"
	ErrDevRedisSetData              = "failed to set data in Redis"
	ErrDevRedisGetData              = "failed to get data from Redis"
	ErrDevRedisDeleteData           = "failed to delete data from Redis"
	ErrDevRabbitMQPublish           = "failed to publish message to queue '%s'"
	ErrDevMinioFailedToCreateObject = "failed to store object in bucket '%s'"
	ErrDevMinioFailedToPresign      = "failed to presign object URL in bucket '%s'"
)
