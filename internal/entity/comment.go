package entity

import "time"

type Comment struct {
	ID        string
	ListingID string
	Listing   *Listing // populated on read, mirrors the joined listing reference
	Text      string
	Username  string
	Date      time.Time
	Likes     int64
	Dislikes  int64
}
