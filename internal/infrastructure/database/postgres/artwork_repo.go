package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"

	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/logging"
)

// Artwork is one persisted pipeline result, keyed by its signature id.
type Artwork struct {
	ID              string                     `json:"id"`
	Title           string                     `json:"title"`
	Subspecialty    emotion.Subspecialty       `json:"subspecialty"`
	DominantEmotion emotion.JourneyDimension   `json:"dominantEmotion"`
	Rarity          float64                    `json:"rarity"`
	Profile         emotion.EmotionalProfile   `json:"profile"`
	Signature       emotion.EmotionalSignature `json:"signature"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

// ListFilter narrows and pages List results.
type ListFilter struct {
	Subspecialty emotion.Subspecialty // empty means all
	Limit        int                  // defaults to 50, capped at 200
	Offset       int
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// normalize fills defaults and clamps paging bounds.
func (f ListFilter) normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// dbtx is the subset of pgxpool.Pool the repository uses.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ArtworkRepository persists artworks in PostgreSQL.
type ArtworkRepository struct {
	db     dbtx
	logger logging.Logger
}

// NewArtworkRepository constructs a repository over an open pool.
func NewArtworkRepository(db dbtx, logger logging.Logger) *ArtworkRepository {
	return &ArtworkRepository{db: db, logger: logging.OrNop(logger)}
}

// Save inserts or replaces an artwork row.
func (r *ArtworkRepository) Save(ctx context.Context, artwork Artwork) error {
	profileJSON, err := json.Marshal(artwork.Profile)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshal profile")
	}
	signatureJSON, err := json.Marshal(artwork.Signature)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshal signature")
	}

	createdAt := artwork.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO artworks (id, title, subspecialty, dominant_emotion, rarity, profile, signature, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			subspecialty = EXCLUDED.subspecialty,
			dominant_emotion = EXCLUDED.dominant_emotion,
			rarity = EXCLUDED.rarity,
			profile = EXCLUDED.profile,
			signature = EXCLUDED.signature`

	_, err = r.db.Exec(ctx, query,
		artwork.ID, artwork.Title, string(artwork.Subspecialty),
		string(artwork.DominantEmotion), artwork.Rarity,
		profileJSON, signatureJSON, createdAt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "save artwork")
	}

	r.logger.Debug("artwork saved", logging.String("id", artwork.ID))
	return nil
}

// GetByID loads one artwork; a missing id yields ErrCodeArtworkNotFound.
func (r *ArtworkRepository) GetByID(ctx context.Context, id string) (Artwork, error) {
	const query = `
		SELECT id, title, subspecialty, dominant_emotion, rarity, profile, signature, created_at
		FROM artworks WHERE id = $1`

	artwork, err := scanArtwork(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artwork{}, apperrors.Newf(apperrors.ErrCodeArtworkNotFound, "artwork %s not found", id)
		}
		return Artwork{}, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "load artwork")
	}
	return artwork, nil
}

// List returns artworks newest first, optionally filtered by subspecialty.
func (r *ArtworkRepository) List(ctx context.Context, filter ListFilter) ([]Artwork, error) {
	filter = filter.normalize()

	query := `
		SELECT id, title, subspecialty, dominant_emotion, rarity, profile, signature, created_at
		FROM artworks`
	var args []any
	if filter.Subspecialty != "" {
		query += ` WHERE subspecialty = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []any{string(filter.Subspecialty), filter.Limit, filter.Offset}
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = []any{filter.Limit, filter.Offset}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "list artworks")
	}
	defer rows.Close()

	var out []Artwork
	for rows.Next() {
		artwork, scanErr := scanArtwork(rows)
		if scanErr != nil {
			return nil, apperrors.Wrap(scanErr, apperrors.ErrCodeDatabaseError, "scan artwork row")
		}
		out = append(out, artwork)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "iterate artworks")
	}
	return out, nil
}

// Delete removes one artwork; a missing id yields ErrCodeArtworkNotFound.
func (r *ArtworkRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM artworks WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "delete artwork")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.ErrCodeArtworkNotFound, "artwork %s not found", id)
	}
	return nil
}

func scanArtwork(row pgx.Row) (Artwork, error) {
	var (
		artwork       Artwork
		subspecialty  string
		dominant      string
		profileJSON   []byte
		signatureJSON []byte
	)
	err := row.Scan(&artwork.ID, &artwork.Title, &subspecialty, &dominant,
		&artwork.Rarity, &profileJSON, &signatureJSON, &artwork.CreatedAt)
	if err != nil {
		return Artwork{}, err
	}

	artwork.Subspecialty = emotion.Subspecialty(subspecialty)
	artwork.DominantEmotion = emotion.JourneyDimension(dominant)
	if err := json.Unmarshal(profileJSON, &artwork.Profile); err != nil {
		return Artwork{}, err
	}
	if err := json.Unmarshal(signatureJSON, &artwork.Signature); err != nil {
		return Artwork{}, err
	}
	return artwork, nil
}
