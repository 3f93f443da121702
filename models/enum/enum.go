package enum

type AccountStatus string

const (
	// account is trading its evaluation normally
	Active AccountStatus = "ACTIVE"
	// account breached the trailing drawdown limit, or an admin
	// suspended it directly. the transition is one-way: nothing in
	// the engine flips a suspended account back to active.
	Suspended AccountStatus = "SUSPENDED"
)

type PayoutStatus string

const (
	// created by the trader, awaiting admin review (FIFO)
	PayoutQueued PayoutStatus = "QUEUED"
	// authorized for settlement - funds movement happens in the
	// external settlement worker, not here
	PayoutApproved PayoutStatus = "APPROVED"
	// declined by an admin with a note
	PayoutRejected PayoutStatus = "REJECTED"
)

func ValidPayoutStatus(s PayoutStatus) bool {
	return s == PayoutQueued || s == PayoutApproved || s == PayoutRejected
}
