package constants

// FailureCode classifies expected business-rule failures that workflows
// return as values rather than errors. Infrastructure failures never use
// these; they propagate as wrapped Go errors.
type FailureCode string

const (
	FailUnauthenticated FailureCode = "unauthenticated"
	FailUnauthorized    FailureCode = "unauthorized"
	FailNotFound        FailureCode = "not_found"
	FailValidation      FailureCode = "validation_failed"
	FailDuplicate       FailureCode = "duplicate"
)

const (
	MsgUnauthenticated       = "You must be signed in to do that"
	MsgAdminOnly             = "Only administrators can perform this action"
	MsgMentorAlreadyApplied  = "You have already submitted an application."
	MsgMentorNotFound        = "Mentor application not found"
	MsgMentorNotApproved     = "This mentor is not accepting messages"
	MsgMentorDeleteForbidden = "Unauthorized. You can only delete your own mentor application."
	MsgMessageNotFound       = "Message not found"
	MsgEventNotFound         = "Event not found"
	MsgStoryNotFound         = "Story not found"
	MsgPostNotFound          = "Post not found"
	MsgInternshipNotFound    = "Internship not found"
	MsgRoleAlreadyAssigned   = "A role has already been chosen for this account"
)
