package vocabulary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordexam/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/vocabulary/mock_repository.go -package=mock_vocabulary Repository

// Repository defines operations for managing users, books and words.
type Repository interface {
	CreateUser(ctx context.Context, name string) (*User, error)
	FindUserByName(ctx context.Context, name string) (*User, error)
	FindUserByID(ctx context.Context, id int64) (*User, error)
	FindUsers(ctx context.Context) ([]User, error)

	CreateBook(ctx context.Context, title string, ownerID int64) (*Book, error)
	FindBookByTitle(ctx context.Context, title string) (*Book, error)
	FindBookByID(ctx context.Context, id int64) (*Book, error)
	FindBooks(ctx context.Context) ([]Book, error)

	FindWords(ctx context.Context, bookID int64) ([]Word, error)
	FindWordsByIDs(ctx context.Context, ids []int64) ([]Word, error)
	FindWordsWithoutPronunciation(ctx context.Context, bookID int64) ([]Word, error)
	SearchWords(ctx context.Context, bookID int64, keyword string) ([]Word, error)
	BatchCreateWords(ctx context.Context, words []*Word) error
	BatchUpdateWords(ctx context.Context, words []*Word) error
}

// DBRepository implements Repository on any sqlx connection.
type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db, now: time.Now}
}

func (r *DBRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Second)
}

func (r *DBRepository) CreateUser(ctx context.Context, name string) (*User, error) {
	now := r.timestamp()
	id, err := database.InsertReturningID(ctx, r.db,
		"INSERT INTO users (name, created_at, updated_at) VALUES (?, ?, ?)",
		name, now, now,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("user %q already exists: %w", name, database.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &User{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

func (r *DBRepository) FindUserByName(ctx context.Context, name string) (*User, error) {
	var user User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT * FROM users WHERE name = ?"), name); err != nil {
		return nil, notFound(err, "user %q", name)
	}
	return &user, nil
}

func (r *DBRepository) FindUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT * FROM users WHERE id = ?"), id); err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return &user, nil
}

func (r *DBRepository) FindUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (r *DBRepository) CreateBook(ctx context.Context, title string, ownerID int64) (*Book, error) {
	now := r.timestamp()
	id, err := database.InsertReturningID(ctx, r.db,
		"INSERT INTO books (title, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?)",
		title, ownerID, now, now,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("book %q already exists: %w", title, database.ErrConflict)
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return &Book{ID: id, Title: title, OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}, nil
}

func (r *DBRepository) FindBookByTitle(ctx context.Context, title string) (*Book, error) {
	var book Book
	if err := r.db.GetContext(ctx, &book, r.db.Rebind("SELECT * FROM books WHERE title = ?"), title); err != nil {
		return nil, notFound(err, "book %q", title)
	}
	return &book, nil
}

func (r *DBRepository) FindBookByID(ctx context.Context, id int64) (*Book, error) {
	var book Book
	if err := r.db.GetContext(ctx, &book, r.db.Rebind("SELECT * FROM books WHERE id = ?"), id); err != nil {
		return nil, notFound(err, "book %d", id)
	}
	return &book, nil
}

func (r *DBRepository) FindBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := r.db.SelectContext(ctx, &books, "SELECT * FROM books ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	return books, nil
}

// FindWords returns the words of a book in creation order.
func (r *DBRepository) FindWords(ctx context.Context, bookID int64) ([]Word, error) {
	var words []Word
	if err := r.db.SelectContext(ctx, &words, r.db.Rebind("SELECT * FROM words WHERE book_id = ? ORDER BY id"), bookID); err != nil {
		return nil, fmt.Errorf("load words of book %d: %w", bookID, err)
	}
	return words, nil
}

func (r *DBRepository) FindWordsByIDs(ctx context.Context, ids []int64) ([]Word, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM words WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, fmt.Errorf("build words query: %w", err)
	}
	var words []Word
	if err := r.db.SelectContext(ctx, &words, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load words by ids: %w", err)
	}
	return words, nil
}

func (r *DBRepository) FindWordsWithoutPronunciation(ctx context.Context, bookID int64) ([]Word, error) {
	var words []Word
	if err := r.db.SelectContext(ctx, &words,
		r.db.Rebind("SELECT * FROM words WHERE book_id = ? AND pronunciation = '' ORDER BY id"),
		bookID,
	); err != nil {
		return nil, fmt.Errorf("load words without pronunciation: %w", err)
	}
	return words, nil
}

// SearchWords returns the words of a book containing keyword, ordered by pronunciation.
func (r *DBRepository) SearchWords(ctx context.Context, bookID int64, keyword string) ([]Word, error) {
	var words []Word
	if err := r.db.SelectContext(ctx, &words,
		r.db.Rebind("SELECT * FROM words WHERE book_id = ? AND word LIKE ? ORDER BY pronunciation, word"),
		bookID, "%"+keyword+"%",
	); err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	return words, nil
}

// BatchCreateWords inserts words in a single transaction using multi-row INSERTs.
func (r *DBRepository) BatchCreateWords(ctx context.Context, words []*Word) error {
	if len(words) == 0 {
		return nil
	}

	now := r.timestamp()
	columns := []string{"book_id", "word", "pronunciation", "meaning", "example", "example_translation", "link", "note", "created_at", "updated_at"}
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, chunk := range database.Chunks(len(words), database.MaxRowsPerInsert) {
			batch := words[chunk[0]:chunk[1]]
			query := database.BuildMultiRowInsert("words", columns, len(batch))

			var args []interface{}
			for _, w := range batch {
				args = append(args, w.BookID, w.Word, w.Pronunciation, w.Meaning, w.Example, w.ExampleTranslation, w.Link, w.Note, now, now)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("insert words: %w", err)
			}
		}
		return nil
	})
}

// BatchUpdateWords rewrites the editable fields of existing words, matched by id.
func (r *DBRepository) BatchUpdateWords(ctx context.Context, words []*Word) error {
	if len(words) == 0 {
		return nil
	}

	now := r.timestamp()
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		query := tx.Rebind(`UPDATE words SET pronunciation = ?, meaning = ?, example = ?, example_translation = ?, link = ?, note = ?, updated_at = ?
			WHERE id = ?`)
		for _, w := range words {
			if _, err := tx.ExecContext(ctx, query, w.Pronunciation, w.Meaning, w.Example, w.ExampleTranslation, w.Link, w.Note, now, w.ID); err != nil {
				return fmt.Errorf("update word %d: %w", w.ID, err)
			}
		}
		return nil
	})
}

func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf(format+": %w", append(args, database.ErrNotFound)...)
	}
	return fmt.Errorf("load "+format+": %w", append(args, err)...)
}
