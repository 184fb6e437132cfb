package library

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"
)

// credentials abstracts how stored passwords are produced and checked, so
// the historical plaintext comparison and the hashed upgrade coexist.
type credentials interface {
	store(password string) (string, error)
	match(stored, password string) bool
}

// plainCredentials keeps passwords verbatim and compares with string
// equality. This is the default for compatibility with existing data
// files; see bcryptCredentials for the opt-in upgrade.
type plainCredentials struct{}

func (plainCredentials) store(password string) (string, error) { return password, nil }
func (plainCredentials) match(stored, password string) bool    { return stored == password }

type bcryptCredentials struct{}

func (bcryptCredentials) store(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (bcryptCredentials) match(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

var (
	reUpper   = regexp.MustCompile(`[A-Z]`)
	reLower   = regexp.MustCompile(`[a-z]`)
	reDigit   = regexp.MustCompile(`[0-9]`)
	reSpecial = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// ValidatePassword enforces the registration strength policy: at least 8
// characters including one uppercase letter, one lowercase letter, one
// digit and one special character. The policy applies at registration
// only; login compares whatever was stored.
func ValidatePassword(password string) error {
	return validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.Length(8, 0).Error("password must be at least 8 characters"),
		validation.Match(reUpper).Error("password must contain an uppercase letter"),
		validation.Match(reLower).Error("password must contain a lowercase letter"),
		validation.Match(reDigit).Error("password must contain a digit"),
		validation.Match(reSpecial).Error("password must contain a special character"),
	)
}

// Registry owns student identity records. Usernames are unique under
// case-sensitive exact matching and students are never deleted.
type Registry struct {
	students []*Student
	creds    credentials
}

// NewRegistry builds an empty registry. When hashed is true, passwords
// are stored and checked as bcrypt hashes instead of plaintext.
func NewRegistry(hashed bool) *Registry {
	r := &Registry{creds: plainCredentials{}}
	if hashed {
		r.creds = bcryptCredentials{}
	}
	return r
}

// Hydrate replaces the registry contents with persisted records.
func (r *Registry) Hydrate(students []*Student) {
	r.students = students
}

// Students returns all records in registration order.
func (r *Registry) Students() []*Student { return r.students }

// Count returns the number of registered students.
func (r *Registry) Count() int { return len(r.students) }

// Student resolves a registry index to the live record.
func (r *Registry) Student(index int) (*Student, error) {
	if index < 0 || index >= len(r.students) {
		return nil, ErrStudentNotFound
	}
	return r.students[index], nil
}

// Exists reports whether a username is already taken.
func (r *Registry) Exists(username string) bool {
	for _, s := range r.students {
		if s.Username == username {
			return true
		}
	}
	return false
}

// Register appends a new student after checking uniqueness, capacity and
// the password strength policy.
func (r *Registry) Register(username, password string) (*Student, error) {
	if r.Exists(username) {
		return nil, ErrDuplicateUsername
	}
	if len(r.students) >= MaxStudents {
		return nil, ErrRegistryFull
	}
	if err := ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}
	stored, err := r.creds.store(password)
	if err != nil {
		return nil, err
	}
	student := &Student{Username: username, Password: stored}
	r.students = append(r.students, student)
	return student, nil
}

// Authenticate scans for an exact username match with a matching password
// and returns the student's registry index.
func (r *Registry) Authenticate(username, password string) (int, error) {
	for i, s := range r.students {
		if s.Username == username && r.creds.match(s.Password, password) {
			return i, nil
		}
	}
	return -1, ErrInvalidCredentials
}
