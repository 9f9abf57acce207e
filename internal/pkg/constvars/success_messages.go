package constvars

const (
	ResponseSuccess = "Success"

	UserRegisteredSuccessMessage        = "User registered successfully"
	UserLoggedInSuccessMessage          = "Logged in successfully"
	UserLoggedOutSuccessMessage         = "Logged out successfully"
	SessionCreatedSuccessMessage        = "Session created successfully"
	BookingCreatedSuccessMessage        = "Booking created successfully"
	BookingConfirmedSuccessMessage      = "Booking confirmed successfully"
	BookingCancelledSuccessMessage      = "Booking cancelled successfully"
	BookingRefundSuccessMessage         = "Booking refund processed successfully"
	BookingCompletedSuccessMessage      = "Booking marked as completed"
	BookingRescheduledSuccessMessage    = "Booking rescheduled successfully"
	BookingNoShowSuccessMessage         = "Booking marked as no-show"
	PaymentCreatedSuccessMessage        = "Payment created successfully"
	PaymentCompletedSuccessMessage      = "Payment completed successfully"
	PaymentWebhookSuccessMessage        = "Payment webhook processed"
	InvoiceCreatedSuccessMessage        = "Invoice created successfully"
	InvoicePaymentSuccessMessage        = "Invoice payment recorded"
	NotificationCreatedSuccessMessage   = "Notification created successfully"
	NotificationDismissedMessage        = "Notification dismissed"
	ForumPostCreatedSuccessMessage      = "Post created successfully"
	ForumReplyCreatedSuccessMessage     = "Reply created successfully"
	AttachmentUploadedSuccessMessage    = "Attachment uploaded successfully"
	NotificationCleanupSuccessMessage   = "Expired notifications cleaned up"
	NotificationRetryQueuedMessage      = "Notification retry queued"
	PaymentRetryQueuedMessage           = "Payment retry queued"
	InvoiceMarkedSentSuccessMessage     = "Invoice marked as sent"
	InvoiceMarkedViewedSuccessMessage   = "Invoice marked as viewed"
	InvoiceCancelledSuccessMessage      = "Invoice cancelled"
	InvoiceRefundProcessedMessage       = "Invoice refund processed"
	SessionPublishedSuccessMessage      = "Session published successfully"
	SessionCancelledSuccessMessage      = "Session cancelled successfully"
	SessionCompletedSuccessMessage      = "Session marked as completed"
	SessionDeletedSuccessMessage        = "Session deleted successfully"
	NotificationMarkedReadMessage       = "Notification marked as read"
	NotificationMarkedClickedMessage    = "Notification marked as clicked"
	ForumPostDeletedSuccessMessage      = "Post deleted successfully"
	ForumVoteToggledSuccessMessage      = "Vote updated"
)
