package models

import "time"

type Post struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	Note        *string   `db:"note" json:"note"`
	CategoryID  int64     `db:"category_id" json:"category_id"`
	// CategoryName is populated by queries joining categories, not stored.
	CategoryName string    `db:"category_name" json:"category_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
