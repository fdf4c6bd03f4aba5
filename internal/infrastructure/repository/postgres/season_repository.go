package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
	qb "github.com/tochoprime/league-console/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").Where(qb.Eq("public_id", seasonID)).Limit(1).ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query, args, err := qb.InsertInto("seasons").
		Columns("public_id", "name", "start_date", "end_date", "is_active", "created_at").
		Values(item.ID, item.Name, toNullTime(item.StartDate), toNullTime(item.EndDate), item.IsActive, createdAt.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) Update(ctx context.Context, item season.Season) error {
	query, args, err := qb.Update("seasons").
		Set("name", item.Name).
		Set("start_date", toNullTime(item.StartDate)).
		Set("end_date", toNullTime(item.EndDate)).
		Set("is_active", item.IsActive).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season query: %w", err)
	}
	return execOne(ctx, r.db, "update season", query, args...)
}

func (r *SeasonRepository) Delete(ctx context.Context, seasonID string) error {
	query, args, err := qb.DeleteFrom("seasons").Where(qb.Eq("public_id", seasonID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete season query: %w", err)
	}
	if err := execOne(ctx, r.db, "delete season", query, args...); err != nil {
		return deleteError("delete season", err)
	}
	return nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:        row.PublicID,
		Name:      row.Name,
		StartDate: fromNullTime(row.StartDate),
		EndDate:   fromNullTime(row.EndDate),
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
}

type DivisionRepository struct {
	db *sqlx.DB
}

func NewDivisionRepository(db *sqlx.DB) *DivisionRepository {
	return &DivisionRepository{db: db}
}

func (r *DivisionRepository) ListBySeason(ctx context.Context, seasonID string) ([]division.Division, error) {
	query, args, err := qb.Select("*").From("divisions").Where(qb.Eq("season_public_id", seasonID)).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select divisions query: %w", err)
	}

	var rows []divisionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select divisions by season: %w", err)
	}

	out := make([]division.Division, 0, len(rows))
	for _, row := range rows {
		out = append(out, divisionFromRow(row))
	}
	return out, nil
}

func (r *DivisionRepository) GetByID(ctx context.Context, divisionID string) (division.Division, bool, error) {
	query, args, err := qb.Select("*").From("divisions").Where(qb.Eq("public_id", divisionID)).Limit(1).ToSQL()
	if err != nil {
		return division.Division{}, false, fmt.Errorf("build get division query: %w", err)
	}

	var row divisionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return division.Division{}, false, nil
		}
		return division.Division{}, false, fmt.Errorf("get division: %w", err)
	}
	return divisionFromRow(row), true, nil
}

func (r *DivisionRepository) Create(ctx context.Context, item division.Division) error {
	query, args, err := qb.InsertInto("divisions").
		Columns("public_id", "season_public_id", "name", "color").
		Values(item.ID, item.SeasonID, item.Name, item.Color).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert division query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert division: %w", err)
	}
	return nil
}

func (r *DivisionRepository) Update(ctx context.Context, item division.Division) error {
	query, args, err := qb.Update("divisions").
		Set("name", item.Name).
		Set("color", item.Color).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update division query: %w", err)
	}
	return execOne(ctx, r.db, "update division", query, args...)
}

func (r *DivisionRepository) Delete(ctx context.Context, divisionID string) error {
	query, args, err := qb.DeleteFrom("divisions").Where(qb.Eq("public_id", divisionID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete division query: %w", err)
	}
	if err := execOne(ctx, r.db, "delete division", query, args...); err != nil {
		return deleteError("delete division", err)
	}
	return nil
}

func divisionFromRow(row divisionTableModel) division.Division {
	return division.Division{
		ID:       row.PublicID,
		SeasonID: row.SeasonID,
		Name:     row.Name,
		Color:    row.Color,
	}
}

type RefereeRepository struct {
	db *sqlx.DB
}

func NewRefereeRepository(db *sqlx.DB) *RefereeRepository {
	return &RefereeRepository{db: db}
}

func (r *RefereeRepository) ListBySeason(ctx context.Context, seasonID string) ([]referee.Referee, error) {
	query, args, err := qb.Select("*").From("referees").Where(qb.Eq("season_public_id", seasonID)).OrderBy("name", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select referees query: %w", err)
	}

	var rows []refereeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select referees by season: %w", err)
	}

	out := make([]referee.Referee, 0, len(rows))
	for _, row := range rows {
		out = append(out, referee.Referee{
			ID:       row.PublicID,
			SeasonID: row.SeasonID,
			Name:     row.Name,
			Phone:    row.Phone,
			Email:    row.Email,
			IsActive: row.IsActive,
		})
	}
	return out, nil
}

func (r *RefereeRepository) Create(ctx context.Context, item referee.Referee) error {
	query, args, err := qb.InsertInto("referees").
		Columns("public_id", "season_public_id", "name", "phone", "email", "is_active").
		Values(item.ID, item.SeasonID, item.Name, item.Phone, item.Email, item.IsActive).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert referee query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert referee: %w", err)
	}
	return nil
}
