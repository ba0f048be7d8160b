package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"blogbackend/internal/models"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category has posts")
)

type CategoryRepository interface {
	GetAll() ([]*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id int64) error
	Exists(id int64) (bool, error)
}

type categoryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCategoryRepository(db *sqlx.DB, logger *zap.Logger) CategoryRepository {
	return &categoryRepository{db: db, logger: logger}
}

func (r *categoryRepository) GetAll() ([]*models.Category, error) {
	categories := []*models.Category{}
	query := `SELECT id, name FROM categories ORDER BY name`
	err := r.db.Select(&categories, query)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Create(category *models.Category) error {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	err := r.db.QueryRowx(query, category.Name).StructScan(category)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

func (r *categoryRepository) Update(category *models.Category) error {
	query := `UPDATE categories SET name = $1 WHERE id = $2`
	result, err := r.db.Exec(query, category.Name, category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes the category. The posts table references categories with
// ON DELETE RESTRICT, so a category that still has posts fails with a
// foreign-key violation, mapped to ErrCategoryInUse.
func (r *categoryRepository) Delete(id int64) error {
	query := `DELETE FROM categories WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Exists(id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`
	err := r.db.Get(&exists, query, id)
	if err != nil {
		return false, err
	}
	return exists, nil
}
