package model

// Category is a soft reference: products carry the category name as free
// text, so deleting or renaming a category never cascades anywhere.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(120);uniqueIndex;not null" json:"name" validate:"required"`
}
