package library

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// File names under the data directory.
const (
	StudentsFile = "students.dat"
	LogsFile     = "logs.dat"
)

// Fixed field widths of the persisted records. Strings longer than their
// field are truncated on write, like the source data files.
const (
	usernameLen = 50
	passwordLen = 64 // wide enough for a bcrypt hash in hashed mode
	bookNameLen = 100
	actionLen   = 10
)

// Store reads and writes the durable student and audit-log state as two
// independent binary files. Each file is a little-endian uint32 record
// count followed by that many fixed-layout records. A missing file means
// "start empty". Writes are full overwrites and the two files are not
// written atomically with respect to each other; concurrent processes
// sharing a data directory are last-writer-wins.
type Store struct {
	dir string
}

// NewStore ensures the data directory exists so a first run succeeds.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// ---------------------------------------------------------------------------
// Record layouts
// ---------------------------------------------------------------------------

type issuedRecord struct {
	Stream     int32
	Subject    int32
	Book       int32
	BookName   [bookNameLen]byte
	IssueUnix  int64
	DueUnix    int64
	ReturnUnix int64
	Returned   int32
}

type studentRecord struct {
	Username    [usernameLen]byte
	Password    [passwordLen]byte
	IssuedCount int32
	Issued      [MaxIssuedPerStudent]issuedRecord
}

type logRecord struct {
	StudentIndex int32
	Username     [usernameLen]byte
	BookName     [bookNameLen]byte
	Action       [actionLen]byte
	Unix         int64
}

func putString(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

func fieldString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func putUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fieldTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func encodeStudent(s *Student) studentRecord {
	var rec studentRecord
	putString(rec.Username[:], s.Username)
	putString(rec.Password[:], s.Password)
	rec.IssuedCount = int32(len(s.Issued))
	for i, ib := range s.Issued {
		if i >= MaxIssuedPerStudent {
			break
		}
		slot := &rec.Issued[i]
		slot.Stream = int32(ib.Ref.Stream)
		slot.Subject = int32(ib.Ref.Subject)
		slot.Book = int32(ib.Ref.Book)
		putString(slot.BookName[:], ib.BookName)
		slot.IssueUnix = putUnix(ib.IssueDate)
		slot.DueUnix = putUnix(ib.DueDate)
		slot.ReturnUnix = putUnix(ib.ReturnDate)
		if ib.Returned {
			slot.Returned = 1
		}
	}
	return rec
}

func decodeStudent(rec *studentRecord) (*Student, error) {
	if rec.IssuedCount < 0 || int(rec.IssuedCount) > MaxIssuedPerStudent {
		return nil, fmt.Errorf("issued record count %d exceeds capacity %d", rec.IssuedCount, MaxIssuedPerStudent)
	}
	s := &Student{
		Username: fieldString(rec.Username[:]),
		Password: fieldString(rec.Password[:]),
	}
	for i := 0; i < int(rec.IssuedCount); i++ {
		slot := &rec.Issued[i]
		s.Issued = append(s.Issued, IssuedBook{
			Ref: BookRef{
				Stream:  int(slot.Stream),
				Subject: int(slot.Subject),
				Book:    int(slot.Book),
			},
			BookName:   fieldString(slot.BookName[:]),
			IssueDate:  fieldTime(slot.IssueUnix),
			DueDate:    fieldTime(slot.DueUnix),
			ReturnDate: fieldTime(slot.ReturnUnix),
			Returned:   slot.Returned != 0,
		})
	}
	return s, nil
}

func encodeLog(e LogEntry) logRecord {
	var rec logRecord
	rec.StudentIndex = int32(e.StudentIndex)
	putString(rec.Username[:], e.Username)
	putString(rec.BookName[:], e.BookName)
	putString(rec.Action[:], e.Action)
	rec.Unix = putUnix(e.Timestamp)
	return rec
}

func decodeLog(rec *logRecord) LogEntry {
	return LogEntry{
		StudentIndex: int(rec.StudentIndex),
		Username:     fieldString(rec.Username[:]),
		BookName:     fieldString(rec.BookName[:]),
		Action:       fieldString(rec.Action[:]),
		Timestamp:    fieldTime(rec.Unix),
	}
}

// ---------------------------------------------------------------------------
// Load / save
// ---------------------------------------------------------------------------

// readCount reads the record-count header and rejects counts beyond the
// collection's fixed capacity, which indicate a corrupt or foreign file.
func readCount(r io.Reader, max int) (int, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, fmt.Errorf("read record count: %w", err)
	}
	if int(count) > max {
		return 0, fmt.Errorf("record count %d exceeds capacity %d", count, max)
	}
	return int(count), nil
}

// LoadStudents reads students.dat. A missing file yields an empty
// registry, not an error.
func (st *Store) LoadStudents() ([]*Student, error) {
	f, err := os.Open(filepath.Join(st.dir, StudentsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", StudentsFile, err)
	}
	defer f.Close()

	count, err := readCount(f, MaxStudents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StudentsFile, err)
	}
	students := make([]*Student, 0, count)
	for i := 0; i < count; i++ {
		var rec studentRecord
		if err := binary.Read(f, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", StudentsFile, i, err)
		}
		s, err := decodeStudent(&rec)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", StudentsFile, i, err)
		}
		students = append(students, s)
	}
	return students, nil
}

// LoadLogs reads logs.dat. A missing file yields an empty log.
func (st *Store) LoadLogs() ([]LogEntry, error) {
	f, err := os.Open(filepath.Join(st.dir, LogsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", LogsFile, err)
	}
	defer f.Close()

	count, err := readCount(f, MaxLogs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogsFile, err)
	}
	logs := make([]LogEntry, 0, count)
	for i := 0; i < count; i++ {
		var rec logRecord
		if err := binary.Read(f, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", LogsFile, i, err)
		}
		logs = append(logs, decodeLog(&rec))
	}
	return logs, nil
}

// SaveStudents overwrites students.dat with the full registry.
func (st *Store) SaveStudents(students []*Student) error {
	return st.writeFile(StudentsFile, len(students), func(w io.Writer) error {
		for _, s := range students {
			rec := encodeStudent(s)
			if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveLogs overwrites logs.dat with the full audit log.
func (st *Store) SaveLogs(logs []LogEntry) error {
	return st.writeFile(LogsFile, len(logs), func(w io.Writer) error {
		for i := range logs {
			rec := encodeLog(logs[i])
			if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (st *Store) writeFile(name string, count int, body func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(st.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, uint32(count)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := body(f); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}
