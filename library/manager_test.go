package library

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, dir string) *Manager {
	t.Helper()
	mgr, err := NewManager(Options{DataDir: dir, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

// TestLendingEndToEnd walks the whole core: empty registry, signup, login,
// issue from the seeded catalog, and a late return twenty days on.
func TestLendingEndToEnd(t *testing.T) {
	mgr := newTestManager(t, t.TempDir())

	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mgr.ledger.now = func() time.Time { return clock }

	_, err := mgr.Register("alice", "Str0ng!Pass1")
	require.NoError(t, err)

	index, err := mgr.Login("alice", "Str0ng!Pass1")
	require.NoError(t, err)

	// BCA → Data Structures → "Data Structures in C", 5 copies seeded.
	ref := BookRef{Stream: 0, Subject: 0, Book: 0}
	record, err := mgr.IssueBook(index, ref)
	require.NoError(t, err)
	assert.Equal(t, "Data Structures in C", record.BookName)

	book, err := mgr.FindBook(ref)
	require.NoError(t, err)
	assert.Equal(t, 4, book.Quantity)

	clock = clock.Add(20 * 24 * time.Hour)
	fine, err := mgr.ReturnBook(index, 0)
	require.NoError(t, err)
	assert.Equal(t, 6*FinePerDay, fine, "twenty days out is six days past a fourteen-day loan")
	assert.Equal(t, 5, book.Quantity)

	logs := mgr.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, ActionIssued, logs[0].Action)
	assert.Equal(t, ActionReturned, logs[1].Action)
	assert.Equal(t, "alice", logs[0].Username)
}

func TestRegistrationPersistsImmediately(t *testing.T) {
	dir := t.TempDir()

	first := newTestManager(t, dir)
	_, err := first.Register("alice", "Str0ng!Pass1")
	require.NoError(t, err)
	// No Close: registration alone must already be durable.

	second := newTestManager(t, dir)
	assert.True(t, second.HasStudent("alice"))
	_, err = second.Login("alice", "Str0ng!Pass1")
	assert.NoError(t, err)
}

func TestStateSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := newTestManager(t, dir)
	_, err := first.Register("alice", "Str0ng!Pass1")
	require.NoError(t, err)
	index, err := first.Login("alice", "Str0ng!Pass1")
	require.NoError(t, err)
	_, err = first.IssueBook(index, BookRef{Stream: 0, Subject: 0, Book: 0})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newTestManager(t, dir)
	student, err := second.Student(0)
	require.NoError(t, err)
	require.Len(t, student.Issued, 1)
	assert.Equal(t, "Data Structures in C", student.Issued[0].BookName)
	assert.False(t, student.Issued[0].Returned)

	logs := second.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, ActionIssued, logs[0].Action)

	// The catalog is rebuilt from the fixed seed on every start; only
	// student and log state is durable.
	book, err := second.FindBook(BookRef{Stream: 0, Subject: 0, Book: 0})
	require.NoError(t, err)
	assert.Equal(t, 5, book.Quantity)
}

func TestIssueUnknownStudent(t *testing.T) {
	mgr := newTestManager(t, t.TempDir())

	_, err := mgr.IssueBook(7, BookRef{})
	assert.ErrorIs(t, err, ErrStudentNotFound)
	_, err = mgr.ReturnBook(7, 0)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestHashedManagerRoundTrip(t *testing.T) {
	dir := t.TempDir()

	mgr, err := NewManager(Options{DataDir: dir, HashPasswords: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	_, err = mgr.Register("alice", "Str0ng!Pass1")
	require.NoError(t, err)
	require.NoError(t, mgr.Close())

	// The bcrypt hash must survive the fixed-width password field.
	reopened, err := NewManager(Options{DataDir: dir, HashPasswords: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Login("alice", "Str0ng!Pass1")
	assert.NoError(t, err)
	_, err = reopened.Login("alice", "Wr0ng!Pass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
