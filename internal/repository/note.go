package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"blogbackend/internal/models"
)

// ErrNoteNotFound is returned both when a note does not exist and when it
// belongs to another user. Callers cannot tell the two apart.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository scopes every read, update, and delete to the owning user.
type NoteRepository interface {
	Create(note *models.Note) error
	GetAllByUser(userID int64) ([]*models.Note, error)
	GetByID(id, userID int64) (*models.Note, error)
	Update(note *models.Note) error
	Delete(id, userID int64) error
}

type noteRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewNoteRepository(db *sqlx.DB, logger *zap.Logger) NoteRepository {
	return &noteRepository{db: db, logger: logger}
}

func (r *noteRepository) Create(note *models.Note) error {
	query := `INSERT INTO notes (title, content, user_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.db.QueryRowx(query, note.Title, note.Content, note.UserID).StructScan(note)
}

func (r *noteRepository) GetAllByUser(userID int64) ([]*models.Note, error) {
	notes := []*models.Note{}
	query := `SELECT id, title, content, user_id, created_at FROM notes WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.Select(&notes, query, userID)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) GetByID(id, userID int64) (*models.Note, error) {
	var note models.Note
	query := `SELECT id, title, content, user_id, created_at FROM notes WHERE id = $1 AND user_id = $2`
	err := r.db.Get(&note, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// Update rewrites the note's title and content. The WHERE clause carries the
// owner id, so updating someone else's note affects zero rows.
func (r *noteRepository) Update(note *models.Note) error {
	query := `UPDATE notes SET title = $1, content = $2 WHERE id = $3 AND user_id = $4`
	result, err := r.db.Exec(query, note.Title, note.Content, note.ID, note.UserID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) Delete(id, userID int64) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoteNotFound
	}
	return nil
}
