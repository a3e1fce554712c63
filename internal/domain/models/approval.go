// internal/domain/models/approval.go
package models

// Approval state values shared by events, opportunities, and users.
//
// Pending may move to Approved or Rejected; both are terminal. There is
// no supported transition back to Pending — reversing an admin decision
// means creating a fresh pending record.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// ApprovalStatus records the moderation decision for a document.
// Reason is only set on rejection.
type ApprovalStatus struct {
	Status string `bson:"status" json:"status"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Pending returns the initial approval state.
func Pending() ApprovalStatus {
	return ApprovalStatus{Status: StatusPending}
}

// IsTerminal reports whether the status can no longer change.
func (a ApprovalStatus) IsTerminal() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}
