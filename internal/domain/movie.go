package domain

import "time"

// Movie is a locally cached copy of one upstream movie record. The ID is the
// upstream source's own numeric identifier, never generated locally, so the
// cache holds at most one row per upstream movie. Rows are inserted the first
// time a workflow resolves the movie and are never updated afterwards.
type Movie struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Overview    string    `json:"overview" db:"overview"`
	ReleaseDate string    `json:"release_date" db:"release_date"`
	PosterPath  string    `json:"poster_path" db:"poster_path"`
	VoteAverage float64   `json:"vote_average" db:"vote_average"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
