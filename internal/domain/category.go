// internal/domain/category.go
package domain

import "time"

// CategoryType classifies a category as money in or money out.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category is a classification label for operations. A NULL UserID marks a
// global category visible to every user.
type Category struct {
	ID        int64        `db:"id" json:"id"`           // Primary key, BIGSERIAL in DB
	UserID    *int64       `db:"user_id" json:"user_id"` // Owning user, nil for global categories
	Name      string       `db:"name" json:"name"`
	Type      CategoryType `db:"type" json:"type"`
	Color     string       `db:"color" json:"color"`
	Icon      string       `db:"icon" json:"icon"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// NewCategory creates a new Category instance.
func NewCategory(userID *int64, name string, categoryType CategoryType, color, icon string) *Category {
	now := time.Now().UTC()
	return &Category{
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
