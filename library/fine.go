package library

import "time"

// Lending policy.
const (
	// BorrowDays is the fixed loan duration in elapsed days.
	BorrowDays = 14
	// BorrowPeriod is BorrowDays expressed as a duration.
	BorrowPeriod = BorrowDays * 24 * time.Hour
	// FinePerDay is the penalty charged per late day, in fine units.
	FinePerDay = 5
)

// Fine computes the late penalty for a return. Returning on or before the
// due date costs nothing. Lateness is truncated to whole elapsed days,
// except that any overage short of a full day still counts as one day.
// There is no upper bound on the total.
func Fine(dueDate, returnDate time.Time) int {
	if !returnDate.After(dueDate) {
		return 0
	}
	daysLate := int(returnDate.Sub(dueDate) / (24 * time.Hour))
	if daysLate == 0 {
		daysLate = 1
	}
	return daysLate * FinePerDay
}
