package recommend

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/database"
	"github.com/kapu/busan-tour-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Repository reads recommendations from PostgreSQL.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepository(postgres *database.PostgresService, logger *zap.Logger) *Repository {
	return &Repository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

func (r *Repository) Get(ctx context.Context, mbti domain.MBTIType, locale string) (*domain.Recommendation, error) {
	if !mbti.IsValid() {
		return nil, ErrUnknownType
	}

	rec, id, err := r.findHeader(ctx, mbti, locale)
	if stderrors.Is(err, sql.ErrNoRows) && locale != domain.DefaultLocale {
		rec, id, err = r.findHeader(ctx, mbti, domain.DefaultLocale)
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownType
	}
	if err != nil {
		return nil, errors.NewServiceError("failed to query recommendation", "postgres", "get", err)
	}

	attractions, err := r.findAttractions(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Attractions = attractions
	return rec, nil
}

func (r *Repository) findHeader(ctx context.Context, mbti domain.MBTIType, locale string) (*domain.Recommendation, int64, error) {
	query := `
		SELECT id, title, description
		FROM mbti_recommendations
		WHERE mbti_type = $1 AND locale = $2
		LIMIT 1
	`

	var (
		id          int64
		title       string
		description string
	)
	if err := r.db.QueryRowContext(ctx, query, string(mbti), locale).Scan(&id, &title, &description); err != nil {
		return nil, 0, err
	}

	return &domain.Recommendation{
		Type:        mbti,
		Locale:      locale,
		Title:       title,
		Description: description,
	}, id, nil
}

func (r *Repository) findAttractions(ctx context.Context, recommendationID int64) ([]domain.Attraction, error) {
	query := `
		SELECT name, category, reason
		FROM attractions
		WHERE recommendation_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, recommendationID)
	if err != nil {
		return nil, errors.NewServiceError("failed to query attractions", "postgres", "get", err)
	}
	defer rows.Close()

	var attractions []domain.Attraction
	for rows.Next() {
		var a domain.Attraction
		if err := rows.Scan(&a.Name, &a.Category, &a.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan attraction: %w", err)
		}
		attractions = append(attractions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attractions: %w", err)
	}
	return attractions, nil
}

// Save replaces the stored recommendation for (type, locale) in one
// transaction.
func (r *Repository) Save(ctx context.Context, rec *domain.Recommendation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO mbti_recommendations (mbti_type, locale, title, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (mbti_type, locale)
		DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description, updated_at = NOW()
		RETURNING id
	`, string(rec.Type), rec.Locale, rec.Title, rec.Description).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to upsert recommendation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM attractions WHERE recommendation_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear attractions: %w", err)
	}

	for pos, a := range rec.Attractions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO attractions (recommendation_id, position, name, category, reason)
			VALUES ($1, $2, $3, $4, $5)
		`, id, pos, a.Name, a.Category, a.Reason); err != nil {
			return fmt.Errorf("failed to insert attraction %q: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recommendation: %w", err)
	}

	r.logger.Debug("Recommendation saved",
		zap.String("type", rec.Type.String()),
		zap.String("locale", rec.Locale),
		zap.Int("attractions", len(rec.Attractions)),
	)
	return nil
}
