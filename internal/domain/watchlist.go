package domain

import "time"

// WatchlistEntry joins one user and one movie. Unique per (user, movie); the
// database constraint is the authoritative duplicate guard.
type WatchlistEntry struct {
	ID      string    `json:"id" db:"id"`
	UserID  string    `json:"user_id" db:"user_id"`
	MovieID int64     `json:"movie_id" db:"movie_id"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
}

// WatchlistItem is a watchlist entry decorated with the cached movie row for
// list responses.
type WatchlistItem struct {
	WatchlistEntry
	Movie Movie `json:"movie"`
}
