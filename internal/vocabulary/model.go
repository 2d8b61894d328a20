// Package vocabulary stores learners, books and the words they contain.
package vocabulary

import "time"

// User is a learner. Every ledger row is owned by one.
type User struct {
	ID        int64     `db:"id" yaml:"id"`
	Name      string    `db:"name" yaml:"name"`
	CreatedAt time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at"`
}

// Book is a vocabulary collection.
type Book struct {
	ID        int64     `db:"id" yaml:"id"`
	Title     string    `db:"title" yaml:"title"`
	OwnerID   int64     `db:"owner_id" yaml:"owner_id"`
	CreatedAt time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at"`
}

// Word is one vocabulary item of a book, unique on (book, word).
// The exam scheduler never mutates it.
type Word struct {
	ID                 int64     `db:"id" yaml:"id,omitempty"`
	BookID             int64     `db:"book_id" yaml:"-"`
	Word               string    `db:"word" yaml:"word"`
	Pronunciation      string    `db:"pronunciation" yaml:"pronunciation,omitempty"`
	Meaning            string    `db:"meaning" yaml:"meaning"`
	Example            string    `db:"example" yaml:"example,omitempty"`
	ExampleTranslation string    `db:"example_translation" yaml:"example_translation,omitempty"`
	Link               string    `db:"link" yaml:"link,omitempty"`
	Note               string    `db:"note" yaml:"note,omitempty"`
	CreatedAt          time.Time `db:"created_at" yaml:"-"`
	UpdatedAt          time.Time `db:"updated_at" yaml:"-"`
}

// SameContent reports whether the editable fields of w and other match.
func (w Word) SameContent(other Word) bool {
	return w.Word == other.Word &&
		w.Pronunciation == other.Pronunciation &&
		w.Meaning == other.Meaning &&
		w.Example == other.Example &&
		w.ExampleTranslation == other.ExampleTranslation &&
		w.Link == other.Link &&
		w.Note == other.Note
}
