package entity

import "time"

type Category struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Subcategory struct {
	ID               string
	Name             string
	Description      string
	ImageURL         string
	ParentCategoryID string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Specialization struct {
	ID            string
	Name          string
	Description   string
	ImageURL      string
	SubcategoryID string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
