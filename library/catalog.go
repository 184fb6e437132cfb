package library

import "strings"

// Catalog owns the stream→subject→book hierarchy and per-book copy counts.
// The structure is fixed at construction; only availability mutates.
type Catalog struct {
	streams []Stream
}

// NewCatalog returns a catalog populated with the institution's holdings,
// every copy on the shelf.
func NewCatalog() *Catalog {
	return &Catalog{streams: seedStreams()}
}

// Streams exposes the hierarchy for listing. Callers must not mutate.
func (c *Catalog) Streams() []Stream {
	return c.streams
}

// Find resolves a positional reference to the live book entry.
func (c *Catalog) Find(ref BookRef) (*Book, error) {
	if ref.Stream < 0 || ref.Stream >= len(c.streams) {
		return nil, ErrBookNotFound
	}
	stream := &c.streams[ref.Stream]
	if ref.Subject < 0 || ref.Subject >= len(stream.Subjects) {
		return nil, ErrBookNotFound
	}
	subject := &stream.Subjects[ref.Subject]
	if ref.Book < 0 || ref.Book >= len(subject.Books) {
		return nil, ErrBookNotFound
	}
	return &subject.Books[ref.Book], nil
}

// TakeCopy removes one copy from the shelf.
func (c *Catalog) TakeCopy(ref BookRef) error {
	book, err := c.Find(ref)
	if err != nil {
		return err
	}
	if book.Quantity == 0 {
		return ErrUnavailable
	}
	book.Quantity--
	return nil
}

// ReturnCopy puts one copy back on the shelf. It does not clamp at Total:
// the ledger's returned-state check is the only guard against a double
// return.
func (c *Catalog) ReturnCopy(ref BookRef) error {
	book, err := c.Find(ref)
	if err != nil {
		return err
	}
	book.Quantity++
	return nil
}

// SearchResult pairs a matching book with its catalog position.
type SearchResult struct {
	Ref         BookRef
	StreamName  string
	SubjectName string
	Book        Book
}

// Search returns every book whose name contains the keyword,
// case-insensitively, in catalog order.
func (c *Catalog) Search(keyword string) []SearchResult {
	needle := strings.ToLower(keyword)
	var results []SearchResult
	for i, stream := range c.streams {
		for j, subject := range stream.Subjects {
			for k, book := range subject.Books {
				if strings.Contains(strings.ToLower(book.Name), needle) {
					results = append(results, SearchResult{
						Ref:         BookRef{Stream: i, Subject: j, Book: k},
						StreamName:  stream.Name,
						SubjectName: subject.Name,
						Book:        book,
					})
				}
			}
		}
	}
	return results
}

func newBook(name string, copies int) Book {
	return Book{Name: name, Quantity: copies, Total: copies}
}

// seedStreams builds the fixed catalog.
func seedStreams() []Stream {
	return []Stream{
		{
			Name: "BCA",
			Subjects: []Subject{
				{
					Name: "Data Structures",
					Books: []Book{
						newBook("Data Structures in C", 5),
						newBook("Algorithms Unlocked", 3),
					},
				},
				{
					Name: "Database Management",
					Books: []Book{
						newBook("Database System Concepts", 4),
					},
				},
			},
		},
		{
			Name: "MCA",
			Subjects: []Subject{
				{
					Name: "Operating Systems",
					Books: []Book{
						newBook("Operating System Concepts", 6),
						newBook("Modern Operating Systems", 2),
					},
				},
				{
					Name: "Advanced Java",
					Books: []Book{
						newBook("Java: The Complete Reference", 7),
					},
				},
			},
		},
		{
			Name: "BTech",
			Subjects: []Subject{
				{
					Name: "Computer Networks",
					Books: []Book{
						newBook("Computer Networking", 4),
						newBook("Data Communication and Networking", 3),
					},
				},
				{
					Name: "Microprocessors",
					Books: []Book{
						newBook("Microprocessor Architecture", 5),
					},
				},
			},
		},
		{
			Name: "BCom",
			Subjects: []Subject{
				{
					Name: "Accounting",
					Books: []Book{
						newBook("Financial Accounting", 8),
						newBook("Cost Accounting", 4),
					},
				},
			},
		},
		{
			Name: "BBA",
			Subjects: []Subject{
				{
					Name: "Marketing",
					Books: []Book{
						newBook("Principles of Marketing", 6),
						newBook("Consumer Behavior", 5),
					},
				},
			},
		},
	}
}
