package library

import "time"

// Capacity limits for the fixed-size collections. The catalog structure is
// immutable after load; only book availability changes afterwards.
const (
	MaxStreams          = 5
	MaxSubjects         = 5
	MaxBooks            = 10
	MaxStudents         = 100
	MaxIssuedPerStudent = 10
	MaxLogs             = 500
)

// Book is one title held by the library. Quantity counts copies currently
// on the shelf; Total is the owned copy count.
type Book struct {
	Name     string
	Author   string
	Quantity int
	Total    int
}

// Subject groups books within a stream.
type Subject struct {
	Name  string
	Books []Book
}

// Stream is a top-level academic grouping (degree track).
type Stream struct {
	Name     string
	Subjects []Subject
}

// BookRef addresses a book by its position in the catalog hierarchy.
// Indexes are zero-based.
type BookRef struct {
	Stream  int
	Subject int
	Book    int
}

// IssuedBook is one lending record, owned exclusively by a student.
// BookName is a snapshot taken at issue time so later catalog changes
// cannot rewrite history. DueDate is immutable once set.
type IssuedBook struct {
	Ref        BookRef
	BookName   string
	IssueDate  time.Time
	DueDate    time.Time
	ReturnDate time.Time
	Returned   bool
}

// Student is a registered borrower. Password holds either the plaintext
// password or a bcrypt hash, depending on the registry's credential mode.
type Student struct {
	Username string
	Password string
	Issued   []IssuedBook
}

// Audit log actions.
const (
	ActionIssued   = "Issued"
	ActionReturned = "Returned"
)

// LogEntry is one immutable audit record. Username and BookName are
// denormalized snapshots.
type LogEntry struct {
	StudentIndex int
	Username     string
	BookName     string
	Action       string
	Timestamp    time.Time
}
