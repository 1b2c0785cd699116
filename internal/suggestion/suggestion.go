package suggestion

import "context"

// Fallback texts returned when the generator is unavailable. Callers always
// get usable content; drafting help degrades, it never fails a request.
const (
	FallbackNotConfigured = "Gemini API key not configured."
	FallbackUnavailable   = "Could not generate a reason at this time."
)

// ServiceAPI drafts reason texts for the portal's forms.
type ServiceAPI interface {
	RequestReason(ctx context.Context, dto RequestReasonDTO) string
	RejectionReason(ctx context.Context, dto RejectionReasonDTO) string
}

// RequestReasonDTO carries the employee's draft context for a leave reason.
type RequestReasonDTO struct {
	LeaveType string `json:"leave_type"`
	Context   string `json:"context"`
}

// RejectionReasonDTO carries the request details an admin is rejecting.
type RejectionReasonDTO struct {
	UserName  string `json:"user_name"`
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// SuggestionResponse wraps the generated text for transport.
type SuggestionResponse struct {
	Text string `json:"text"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d RequestReasonDTO) Validate() error {
	if d.LeaveType == "" {
		return ValidationError{Msg: "leave_type is required"}
	}
	return nil
}

func (d RejectionReasonDTO) Validate() error {
	if d.LeaveType == "" {
		return ValidationError{Msg: "leave_type is required"}
	}
	if d.Reason == "" {
		return ValidationError{Msg: "reason is required"}
	}
	return nil
}
