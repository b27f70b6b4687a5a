package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/pkg/database"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, first_name, last_name, bio, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	// Generate UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.AvatarURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Unique violations are told apart by constraint name so the boundary
		// can report which field collided
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch {
			case strings.Contains(pqErr.Constraint, "email"):
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			case strings.Contains(pqErr.Constraint, "username"):
				return fmt.Errorf("user with username %s already exists: %w", user.Username, ErrDuplicateUsername)
			default:
				return fmt.Errorf("user already exists: %w", ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID without the password hash
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, username, first_name, last_name, bio, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := r.scanPublic(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email without the password hash
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, username, first_name, last_name, bio, avatar_url, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user, err := r.scanPublic(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByEmailWithPassword retrieves a user by email including the password hash.
// Only the login workflow uses this path.
func (r *userRepository) GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, username, password_hash, first_name, last_name, bio, avatar_url, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user := &domain.User{}
	var bio, avatarURL sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&bio,
		&avatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if bio.Valid {
		user.Bio = &bio.String
	}
	if avatarURL.Valid {
		user.AvatarURL = &avatarURL.String
	}

	return user, nil
}

// UpdateProfile updates display fields only and returns the updated row.
// Email, username and password hash are never touched here.
func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name  = COALESCE($3, last_name),
		    bio        = COALESCE($4, bio),
		    avatar_url = COALESCE($5, avatar_url),
		    updated_at = $6
		WHERE id = $1
		RETURNING id, email, username, first_name, last_name, bio, avatar_url, created_at, updated_at
	`

	row := r.db.DB.QueryRowContext(ctx, query,
		userID,
		update.FirstName,
		update.LastName,
		update.Bio,
		update.AvatarURL,
		time.Now(),
	)

	user, err := r.scanPublic(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func (r *userRepository) scanPublic(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var bio, avatarURL sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&bio,
		&avatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bio.Valid {
		user.Bio = &bio.String
	}
	if avatarURL.Valid {
		user.AvatarURL = &avatarURL.String
	}

	return user, nil
}
