package library

import "github.com/rs/zerolog"

// Manager is a thin façade over the catalog, registry, ledger and store,
// keeping CLI code simple. It owns the application state for the life of
// the process: hydrated from the data directory at construction, flushed
// back at Close.
type Manager struct {
	catalog  *Catalog
	registry *Registry
	ledger   *Ledger
	store    *Store
	log      zerolog.Logger
}

// Options configure a Manager.
type Options struct {
	// DataDir holds students.dat and logs.dat. Empty means the current
	// directory.
	DataDir string
	// HashPasswords switches the registry to bcrypt credential storage.
	// Existing plaintext data files are not migrated.
	HashPasswords bool
	Logger        zerolog.Logger
}

// NewManager builds the application state and hydrates it from the data
// directory. Missing data files start the registry and audit log empty.
func NewManager(opts Options) (*Manager, error) {
	store, err := NewStore(opts.DataDir)
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog()
	m := &Manager{
		catalog:  catalog,
		registry: NewRegistry(opts.HashPasswords),
		ledger:   NewLedger(catalog, opts.Logger),
		store:    store,
		log:      opts.Logger,
	}

	students, err := store.LoadStudents()
	if err != nil {
		return nil, err
	}
	m.registry.Hydrate(students)

	logs, err := store.LoadLogs()
	if err != nil {
		return nil, err
	}
	m.ledger.Hydrate(logs)

	m.log.Debug().
		Int("students", m.registry.Count()).
		Int("logs", len(logs)).
		Msg("library state hydrated")
	return m, nil
}

// Close flushes durable state and releases the manager.
func (m *Manager) Close() error {
	m.flush()
	return nil
}

// flush writes both data files. Persistence is best-effort: failures are
// logged, never surfaced to the interactive user.
func (m *Manager) flush() {
	if err := m.store.SaveStudents(m.registry.Students()); err != nil {
		m.log.Warn().Err(err).Msg("saving students failed")
	}
	if err := m.store.SaveLogs(m.ledger.Logs()); err != nil {
		m.log.Warn().Err(err).Msg("saving logs failed")
	}
}

// ------------------ Catalog ------------------

func (m *Manager) Streams() []Stream                    { return m.catalog.Streams() }
func (m *Manager) FindBook(ref BookRef) (*Book, error)  { return m.catalog.Find(ref) }
func (m *Manager) SearchBooks(kw string) []SearchResult { return m.catalog.Search(kw) }

// ------------------ Students ------------------

// HasStudent reports whether the username is already registered.
func (m *Manager) HasStudent(username string) bool { return m.registry.Exists(username) }

// Student resolves a registry index from a previous Login.
func (m *Manager) Student(index int) (*Student, error) { return m.registry.Student(index) }

// Register creates a student and persists the registry immediately.
func (m *Manager) Register(username, password string) (*Student, error) {
	student, err := m.registry.Register(username, password)
	if err != nil {
		return nil, err
	}
	m.log.Info().Str("user", username).Msg("student registered")
	m.flush()
	return student, nil
}

// Login authenticates a student and returns their registry index.
func (m *Manager) Login(username, password string) (int, error) {
	return m.registry.Authenticate(username, password)
}

// ------------------ Circulation ------------------

// IssueBook lends one copy to the student identified by registry index.
func (m *Manager) IssueBook(studentIndex int, ref BookRef) (*IssuedBook, error) {
	student, err := m.registry.Student(studentIndex)
	if err != nil {
		return nil, err
	}
	record, err := m.ledger.Issue(studentIndex, student, ref)
	if err != nil {
		return nil, err
	}
	m.flush()
	return record, nil
}

// ReturnBook closes the student's issued record and reports the fine.
func (m *Manager) ReturnBook(studentIndex, recordIndex int) (int, error) {
	student, err := m.registry.Student(studentIndex)
	if err != nil {
		return 0, err
	}
	fine, err := m.ledger.Return(studentIndex, student, recordIndex)
	if err != nil {
		return 0, err
	}
	m.flush()
	return fine, nil
}

// ------------------ Audit ------------------

// Logs returns the audit log, oldest first.
func (m *Manager) Logs() []LogEntry { return m.ledger.Logs() }
