package library

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "Str0ng!Pass"

func TestRegisterAndExists(t *testing.T) {
	r := NewRegistry(false)

	require.False(t, r.Exists("alice"))
	student, err := r.Register("alice", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, "alice", student.Username)
	assert.True(t, r.Exists("alice"))
	assert.Equal(t, 1, r.Count())

	// Case-sensitive exact match.
	assert.False(t, r.Exists("Alice"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := NewRegistry(false)
	_, err := r.Register("alice", strongPassword)
	require.NoError(t, err)

	_, err = r.Register("alice", strongPassword)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, 1, r.Count(), "failed registration must not change the record count")
}

func TestPasswordPolicy(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"weak", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial123", false},
		{"Sh0rt!a", false},
		{"Str0ng!Pass", true},
		{"Str0ng!Pass1", true},
	}
	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.ok {
			assert.NoError(t, err, "%q should pass", tt.password)
		} else {
			assert.Error(t, err, "%q should fail", tt.password)
		}
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	r := NewRegistry(false)
	_, err := r.Register("bob", "weak")
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Equal(t, 0, r.Count())
}

func TestAuthenticate(t *testing.T) {
	r := NewRegistry(false)
	_, err := r.Register("alice", strongPassword)
	require.NoError(t, err)
	_, err = r.Register("bob", "An0ther!Pass")
	require.NoError(t, err)

	index, err := r.Authenticate("bob", "An0ther!Pass")
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	_, err = r.Authenticate("bob", strongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = r.Authenticate("mallory", strongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegistryFull(t *testing.T) {
	r := NewRegistry(false)
	for i := 0; i < MaxStudents; i++ {
		_, err := r.Register(fmt.Sprintf("student%03d", i), strongPassword)
		require.NoError(t, err)
	}

	_, err := r.Register("onetoomany", strongPassword)
	assert.ErrorIs(t, err, ErrRegistryFull)
	assert.Equal(t, MaxStudents, r.Count())
}

func TestHashedCredentials(t *testing.T) {
	r := NewRegistry(true)
	student, err := r.Register("alice", strongPassword)
	require.NoError(t, err)
	assert.NotEqual(t, strongPassword, student.Password, "hashed mode must not store plaintext")

	index, err := r.Authenticate("alice", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	_, err = r.Authenticate("alice", "Wr0ng!Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
