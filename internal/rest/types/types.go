package types

// OnboardUserRequest is the payload for completing a user's onboarding.
type OnboardUserRequest struct {
	ID                uint64 `json:"id"`
	DisplayName       string `json:"displayName"`
	ProfileCompletion int    `json:"profileCompletion"`
	IdentityVerified  bool   `json:"identityVerified"`
	Premium           bool   `json:"premium"`
}

// SendMessageRequest is the payload for recording a message send.
type SendMessageRequest struct {
	SenderID      uint64 `json:"senderId"`
	RecipientID   uint64 `json:"recipientId"`
	MessageLength int    `json:"messageLength"`
}

// FileReportRequest is the payload for filing a report.
type FileReportRequest struct {
	ReporterID     uint64 `json:"reporterId"`
	ReportedUserID uint64 `json:"reportedUserId"`
	Reason         string `json:"reason"`
	Details        string `json:"details,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
}

// UpdateReportStatusRequest is the payload for a moderation decision.
type UpdateReportStatusRequest struct {
	Status      string `json:"status"`
	ReviewedBy  uint64 `json:"reviewedBy"`
	ActionTaken string `json:"actionTaken,omitempty"`
}

// BlockResponse acknowledges a block or unblock.
type BlockResponse struct {
	BlockerID uint64 `json:"blockerId"`
	BlockedID uint64 `json:"blockedId"`
	Blocked   bool   `json:"blocked"`
}

// ErrorResponse carries a client-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
