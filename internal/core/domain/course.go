package domain

import "time"

// Course is a catalog entry. Only admins create or edit courses.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageLink   string    `json:"imageLink"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CourseChanges carries a partial update; nil fields are left untouched.
type CourseChanges struct {
	Title       *string
	Description *string
	Price       *float64
	ImageLink   *string
	Published   *bool
}

// Empty reports whether the update would change nothing.
func (c CourseChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Price == nil &&
		c.ImageLink == nil && c.Published == nil
}
