package entity

import "time"

type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Location keeps coordinates in [longitude, latitude] order, matching the
// GeoJSON convention used by the 2dsphere index.
type Location struct {
	Country         string     `json:"country"`
	ProductLocation string     `json:"productLocation"`
	Coordinates     [2]float64 `json:"coordinates"`
}

type Policies struct {
	SellerTerms string `json:"sellerTerms,omitempty"`
}

type Listing struct {
	ID               string
	SellerID         string
	Seller           *PublicProfile // populated on single-listing reads
	Contact          Contact
	ProductTitle     string
	Description      string
	ImageURLs        []string
	Price            string
	Featured         bool
	Likes            int64
	Impressions      int64
	CategoryID       string
	SubcategoryID    string
	SpecializationID string
	Location         Location
	Policies         Policies
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
