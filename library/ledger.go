package library

import (
	"time"

	"github.com/rs/zerolog"
)

// Ledger owns the issue/return lifecycle and the audit log. A record moves
// Issued → Returned exactly once; there is no other transition.
type Ledger struct {
	catalog *Catalog
	logs    []LogEntry
	now     func() time.Time
	log     zerolog.Logger
}

// NewLedger builds a ledger operating against the given catalog.
func NewLedger(catalog *Catalog, logger zerolog.Logger) *Ledger {
	return &Ledger{catalog: catalog, now: time.Now, log: logger}
}

// Hydrate replaces the audit log with persisted entries.
func (l *Ledger) Hydrate(logs []LogEntry) {
	l.logs = logs
}

// Logs returns the audit log, oldest first. Callers must not mutate.
func (l *Ledger) Logs() []LogEntry { return l.logs }

// Issue lends one copy of the referenced book to the student. The
// student's record list is bounded; returned records still occupy a slot,
// so the limit counts lifetime loans per student, not active ones.
func (l *Ledger) Issue(studentIndex int, student *Student, ref BookRef) (*IssuedBook, error) {
	if len(student.Issued) >= MaxIssuedPerStudent {
		return nil, ErrLoanLimitReached
	}
	book, err := l.catalog.Find(ref)
	if err != nil {
		return nil, err
	}
	if err := l.catalog.TakeCopy(ref); err != nil {
		return nil, err
	}

	now := l.now()
	student.Issued = append(student.Issued, IssuedBook{
		Ref:       ref,
		BookName:  book.Name,
		IssueDate: now,
		DueDate:   now.Add(BorrowPeriod),
	})
	record := &student.Issued[len(student.Issued)-1]

	l.append(studentIndex, student.Username, record.BookName, ActionIssued, now)
	l.log.Info().
		Str("user", student.Username).
		Str("book", record.BookName).
		Time("due", record.DueDate).
		Msg("book issued")
	return record, nil
}

// Return closes the issued record at recordIndex in the student's list,
// restores the copy to the shelf and reports the fine owed.
func (l *Ledger) Return(studentIndex int, student *Student, recordIndex int) (int, error) {
	if recordIndex < 0 || recordIndex >= len(student.Issued) {
		return 0, ErrRecordNotFound
	}
	record := &student.Issued[recordIndex]
	if record.Returned {
		return 0, ErrAlreadyReturned
	}

	if err := l.catalog.ReturnCopy(record.Ref); err != nil {
		return 0, err
	}
	now := l.now()
	record.ReturnDate = now
	record.Returned = true
	fine := Fine(record.DueDate, now)

	l.append(studentIndex, student.Username, record.BookName, ActionReturned, now)
	l.log.Info().
		Str("user", student.Username).
		Str("book", record.BookName).
		Int("fine", fine).
		Msg("book returned")
	return fine, nil
}

// append adds an audit entry. At capacity the new entry is dropped
// silently; existing entries are never overwritten or evicted.
func (l *Ledger) append(studentIndex int, username, bookName, action string, ts time.Time) {
	if len(l.logs) >= MaxLogs {
		return
	}
	l.logs = append(l.logs, LogEntry{
		StudentIndex: studentIndex,
		Username:     username,
		BookName:     bookName,
		Action:       action,
		Timestamp:    ts,
	})
}
