package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/database"
	"github.com/kapu/busan-tour-bot-go/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staticSource(t *testing.T) *StaticSource {
	t.Helper()
	data, err := domain.LoadRecommendationData()
	require.NoError(t, err)
	return NewStaticSource(data)
}

func TestStaticSource_Get(t *testing.T) {
	src := staticSource(t)
	ctx := context.Background()

	ko, err := src.Get(ctx, domain.INTJ, "ko")
	require.NoError(t, err)
	assert.Equal(t, "ko", ko.Locale)
	assert.NotEmpty(t, ko.Attractions)

	en, err := src.Get(ctx, domain.INTJ, "en")
	require.NoError(t, err)
	assert.Equal(t, "en", en.Locale)
	assert.Len(t, ko.Attractions, 12)
	assert.Len(t, en.Attractions, 7)
	assert.Equal(t, "Beomeosa Temple", en.Attractions[0].Name)

	ja, err := src.Get(ctx, domain.INTJ, "ja")
	require.NoError(t, err)
	assert.Equal(t, "ko", ja.Locale)
	assert.Equal(t, ko.Attractions, ja.Attractions)

	_, err = src.Get(ctx, domain.MBTIType("ABCD"), "ko")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestStaticSource_AllTypesPresent(t *testing.T) {
	src := staticSource(t)
	for _, group := range domain.MBTIGroups {
		for _, mbti := range group.Types {
			rec, err := src.Get(context.Background(), mbti, "ko")
			require.NoError(t, err, mbti)
			assert.NotEmpty(t, rec.Attractions, mbti)
			seen := map[string]bool{}
			for _, a := range rec.Attractions {
				assert.False(t, seen[a.Name], "duplicate %s in %s", a.Name, mbti)
				seen[a.Name] = true
			}
		}
	}
}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(database.NewPostgresServiceWithDB(db, zap.NewNop()), zap.NewNop()), mock
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT id, title, description FROM mbti_recommendations`).
		WithArgs("ENFP", "en").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description"}).AddRow(7, "Free Spirit", "desc"))
	mock.ExpectQuery(`SELECT name, category, reason FROM attractions`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "category", "reason"}).
			AddRow("Gamcheon Culture Village", "Culture Village", "colorful").
			AddRow("Haeundae Beach", "Beach", "lively"))

	rec, err := repo.Get(context.Background(), domain.ENFP, "en")
	require.NoError(t, err)
	assert.Equal(t, "Free Spirit", rec.Title)
	require.Len(t, rec.Attractions, 2)
	assert.Equal(t, "Gamcheon Culture Village", rec.Attractions[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LocaleFallsBackToKorean(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM mbti_recommendations`).
		WithArgs("ISTP", "zh").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description"}))
	mock.ExpectQuery(`FROM mbti_recommendations`).
		WithArgs("ISTP", "ko").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description"}).AddRow(3, "장인", ""))
	mock.ExpectQuery(`FROM attractions`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "category", "reason"}))

	rec, err := repo.Get(context.Background(), domain.ISTP, "zh")
	require.NoError(t, err)
	assert.Equal(t, "ko", rec.Locale)
	assert.Empty(t, rec.Attractions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UnknownType(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.Get(context.Background(), domain.MBTIType("XXXX"), "ko")
	assert.ErrorIs(t, err, ErrUnknownType)

	mock.ExpectQuery(`FROM mbti_recommendations`).
		WithArgs("INTP", "ko").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description"}))
	_, err = repo.Get(context.Background(), domain.INTP, "ko")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newMockRepository(t)
	rec := &domain.Recommendation{
		Type:   domain.ESFJ,
		Locale: "ko",
		Title:  "사교적인 외교관",
		Attractions: []domain.Attraction{
			{Name: "자갈치시장", Category: "시장", Reason: "활기"},
			{Name: "국제시장", Category: "시장", Reason: "쇼핑"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO mbti_recommendations`).
		WithArgs("ESFJ", "ko", "사교적인 외교관", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`DELETE FROM attractions`).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO attractions`).
		WithArgs(int64(11), 0, "자갈치시장", "시장", "활기").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO attractions`).
		WithArgs(int64(11), 1, "국제시장", "시장", "쇼핑").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingSource struct {
	calls int
	err   error
}

func (f *failingSource) Get(context.Context, domain.MBTIType, string) (*domain.Recommendation, error) {
	f.calls++
	return nil, f.err
}

func TestFallbackSource_OpensCircuit(t *testing.T) {
	primary := &failingSource{err: errors.New("connection reset")}
	breaker := util.NewCircuitBreaker(util.CircuitBreakerConfig{
		Name:             "test",
		FailureThreshold: 2,
		ResetTimeout:     time.Hour,
	}, nil, zap.NewNop())
	src := NewFallbackSource(primary, staticSource(t), breaker, zap.NewNop())

	for range 5 {
		rec, err := src.Get(context.Background(), domain.INFJ, "ko")
		require.NoError(t, err)
		assert.NotEmpty(t, rec.Attractions)
	}

	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, util.CircuitStateOpen, breaker.State())
}

func TestFallbackSource_MissingRowsUseFallback(t *testing.T) {
	primary := &failingSource{err: ErrUnknownType}
	breaker := util.NewCircuitBreaker(util.CircuitBreakerConfig{FailureThreshold: 1, ResetTimeout: time.Hour}, nil, nil)
	src := NewFallbackSource(primary, staticSource(t), breaker, nil)

	rec, err := src.Get(context.Background(), domain.ESTP, "en")
	require.NoError(t, err)
	assert.Equal(t, "en", rec.Locale)
	assert.Equal(t, util.CircuitStateClosed, breaker.State())

	_, err = src.Get(context.Background(), domain.MBTIType("NOPE"), "en")
	assert.ErrorIs(t, err, ErrUnknownType)
}
