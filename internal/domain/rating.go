package domain

import "time"

// Rating score bounds, both inclusive. Fractional scores like 8.5 are valid.
const (
	MinRating float64 = 1
	MaxRating float64 = 10
)

// Rating holds one user's score and optional review for one movie. Unique per
// (user, movie); a second submission for the same pair overwrites the first.
type Rating struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	MovieID   int64     `json:"movie_id" db:"movie_id"`
	Rating    float64   `json:"rating" db:"rating"`
	Review    *string   `json:"review" db:"review"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RatingStats aggregates all ratings for one movie, not just a page of them.
type RatingStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}
