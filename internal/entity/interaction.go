package entity

import "time"

// InteractionKind discriminates the per-(listing, user) side records. All
// three variants share one collection; the conflict policy applied on write
// differs per kind.
type InteractionKind string

const (
	KindAvailability    InteractionKind = "availability"
	KindAbuseReport     InteractionKind = "abuse_report"
	KindCallbackRequest InteractionKind = "callback_request"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

type CallbackStatus string

const (
	CallbackPending   CallbackStatus = "pending"
	CallbackCompleted CallbackStatus = "completed"
	CallbackCancelled CallbackStatus = "cancelled"
)

type Interaction struct {
	ID        string
	Kind      InteractionKind
	ListingID string
	UserID    string

	// availability
	IsAvailable bool

	// abuse_report
	ReportContent string
	ReportStatus  ReportStatus

	// callback_request
	CallbackStatus CallbackStatus

	AdditionalInfo string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Active reports whether this record blocks a new one under its kind's
// conflict policy. Availability records never block: they are upserted.
func (i *Interaction) Active() bool {
	switch i.Kind {
	case KindAbuseReport:
		return true
	case KindCallbackRequest:
		return i.CallbackStatus != CallbackCompleted
	default:
		return false
	}
}
