package domain

// NotificationType is the severity of a user-facing notification.
type NotificationType string

const (
	// NotifyError is a failed compile or store operation.
	NotifyError NotificationType = "error"
	// NotifyInfo is an informational notice.
	NotifyInfo NotificationType = "info"
)

// Notification titles.
const (
	TitleCompileFailed = "SASS compilation failed."
	TitleStoreFailed   = "SASS output could not be synchronised with the workspace."
	TitleChainFailed   = "SASS compile chain is invalid."
)

// Notification is a structured diagnostic for the user.
type Notification struct {
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}
