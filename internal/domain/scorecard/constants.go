package scorecard

const (
	ResultStatusDraft     = "draft"
	ResultStatusSubmitted = "submitted"
	ResultStatusApproved  = "approved"

	TaskStatusPending   = "Pending"
	TaskStatusLate      = "Late"
	TaskStatusSubmitted = "Submitted"
	TaskStatusApproved  = "Approved"

	TaskTypeFill    = "scorecard_fill"
	TaskTypeSubmit  = "scorecard_submit"
	TaskTypeApprove = "scorecard_approve"

	stageFill    = "fill"
	stageSubmit  = "submit"
	stageApprove = "approve"

	// FillDueDay anchors the monthly cycle: KPI entry is due on the 15th,
	// the manager submit two days later, the HR approval five days later.
	FillDueDay           = 15
	SubmitDueOffsetDays  = 2
	ApproveDueOffsetDays = 5

	// ApproveAssignee is the literal shown on approval tasks; approval is
	// owned by the HR department as a whole, not an individual.
	ApproveAssignee = "HR Department"
)
