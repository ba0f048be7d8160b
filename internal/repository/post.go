package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"blogbackend/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	GetAll() ([]*models.Post, error)
	GetByID(id int64) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id int64) error
}

type postRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostRepository(db *sqlx.DB, logger *zap.Logger) PostRepository {
	return &postRepository{db: db, logger: logger}
}

func (r *postRepository) GetAll() ([]*models.Post, error) {
	posts := []*models.Post{}
	query := `SELECT p.id, p.title, p.description, p.image_url, p.note, p.category_id, c.name AS category_name, p.created_at
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at DESC`
	err := r.db.Select(&posts, query)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByID(id int64) (*models.Post, error) {
	var post models.Post
	query := `SELECT p.id, p.title, p.description, p.image_url, p.note, p.category_id, c.name AS category_name, p.created_at
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	err := r.db.Get(&post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts the post. A foreign-key violation on category_id means the
// category vanished between the handler's existence check and the insert.
func (r *postRepository) Create(post *models.Post) error {
	query := `INSERT INTO posts (title, description, image_url, note, category_id) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRowx(query, post.Title, post.Description, post.ImageURL, post.Note, post.CategoryID).StructScan(post)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (r *postRepository) Update(post *models.Post) error {
	query := `UPDATE posts SET title = $1, description = $2, image_url = $3, note = $4, category_id = $5 WHERE id = $6`
	result, err := r.db.Exec(query, post.Title, post.Description, post.ImageURL, post.Note, post.CategoryID, post.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	return nil
}
