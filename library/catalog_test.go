package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalogShape(t *testing.T) {
	c := NewCatalog()
	streams := c.Streams()

	require.LessOrEqual(t, len(streams), MaxStreams)
	for _, stream := range streams {
		require.LessOrEqual(t, len(stream.Subjects), MaxSubjects)
		for _, subject := range stream.Subjects {
			require.LessOrEqual(t, len(subject.Books), MaxBooks)
			for _, book := range subject.Books {
				assert.Equal(t, book.Total, book.Quantity, "%s starts fully shelved", book.Name)
				assert.GreaterOrEqual(t, book.Quantity, 0)
			}
		}
	}
}

func TestFind(t *testing.T) {
	c := NewCatalog()

	book, err := c.Find(BookRef{Stream: 0, Subject: 0, Book: 0})
	require.NoError(t, err)
	assert.Equal(t, "Data Structures in C", book.Name)
	assert.Equal(t, 5, book.Quantity)

	for _, ref := range []BookRef{
		{Stream: -1}, {Stream: 99},
		{Subject: -1}, {Subject: 99},
		{Book: -1}, {Book: 99},
	} {
		_, err := c.Find(ref)
		assert.ErrorIs(t, err, ErrBookNotFound, "ref %+v", ref)
	}
}

func TestTakeAndReturnCopy(t *testing.T) {
	c := NewCatalog()
	ref := BookRef{Stream: 1, Subject: 0, Book: 1} // Modern Operating Systems, 2 copies

	require.NoError(t, c.TakeCopy(ref))
	require.NoError(t, c.TakeCopy(ref))

	book, err := c.Find(ref)
	require.NoError(t, err)
	assert.Equal(t, 0, book.Quantity)

	// Exhausted: the failed take must not mutate anything.
	assert.ErrorIs(t, c.TakeCopy(ref), ErrUnavailable)
	assert.Equal(t, 0, book.Quantity)

	require.NoError(t, c.ReturnCopy(ref))
	assert.Equal(t, 1, book.Quantity)
}

func TestSearch(t *testing.T) {
	c := NewCatalog()

	results := c.Search("data structures")
	require.Len(t, results, 1)
	assert.Equal(t, "Data Structures in C", results[0].Book.Name)
	assert.Equal(t, "BCA", results[0].StreamName)
	assert.Equal(t, "Data Structures", results[0].SubjectName)
	assert.Equal(t, BookRef{Stream: 0, Subject: 0, Book: 0}, results[0].Ref)

	// Case-insensitive and partial.
	assert.Len(t, c.Search("OPERATING"), 2)
	assert.Len(t, c.Search("accounting"), 2)

	assert.Empty(t, c.Search("quantum chromodynamics"))
}
