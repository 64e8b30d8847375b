package cancel_duty

// CancelDutyRequest HTTP request model
type CancelDutyRequest struct {
	CancellationReason string `json:"cancellationReason" validate:"max=500"`
}
