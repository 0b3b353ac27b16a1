package enum

// ReportReason represents why a user was reported.
//
//go:generate go tool enumer -type=ReportReason -trimprefix=ReportReason -transform=snake -json -text
type ReportReason int

const (
	// ReportReasonSpam indicates unsolicited or repetitive messaging.
	ReportReasonSpam ReportReason = iota
	// ReportReasonHarassment indicates abusive or threatening behavior.
	ReportReasonHarassment
	// ReportReasonFakeProfile indicates an impersonated or fabricated profile.
	ReportReasonFakeProfile
	// ReportReasonInappropriateContent indicates explicit or offensive content.
	ReportReasonInappropriateContent
	// ReportReasonScam indicates attempted fraud or solicitation.
	ReportReasonScam
	// ReportReasonUnderage indicates a suspected underage user.
	ReportReasonUnderage
	// ReportReasonOther covers reasons not listed above.
	ReportReasonOther
)

// ReportStatus represents the moderation state of a report.
//
//go:generate go tool enumer -type=ReportStatus -trimprefix=ReportStatus -transform=lower -json -text
type ReportStatus int

const (
	// ReportStatusPending indicates a report awaiting review.
	ReportStatusPending ReportStatus = iota
	// ReportStatusReviewed indicates a report seen by a moderator.
	ReportStatusReviewed
	// ReportStatusDismissed indicates a report rejected as unfounded.
	ReportStatusDismissed
	// ReportStatusActioned indicates a report that resulted in action.
	ReportStatusActioned
)
