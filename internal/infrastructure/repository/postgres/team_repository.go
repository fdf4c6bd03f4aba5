package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tochoprime/league-console/internal/domain/team"
	qb "github.com/tochoprime/league-console/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.Team, error) {
	return r.list(ctx, "season", qb.Eq("season_public_id", seasonID))
}

func (r *TeamRepository) ListByCategory(ctx context.Context, categoryID string) ([]team.Team, error) {
	return r.list(ctx, "category", qb.Eq("category_public_id", categoryID))
}

func (r *TeamRepository) ListByCategories(ctx context.Context, categoryIDs []string) ([]team.Team, error) {
	if len(categoryIDs) == 0 {
		return []team.Team{}, nil
	}
	return r.list(ctx, "categories", qb.In("category_public_id", categoryIDs))
}

func (r *TeamRepository) list(ctx context.Context, scope string, cond qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").Where(cond).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by %s query: %w", scope, err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by %s: %w", scope, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").Where(qb.Eq("public_id", teamID)).Limit(1).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("teams").Where(qb.Eq("category_public_id", categoryID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count teams query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count teams by category: %w", err)
	}
	return count, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	registered := item.RegistrationDate
	if registered.IsZero() {
		registered = time.Now()
	}
	query, args, err := qb.InsertInto("teams").
		Columns("public_id", "category_public_id", "season_public_id", "name", "short_name",
			"primary_color", "secondary_color", "coach_name", "coach_phone", "coach_email",
			"status", "payment_status", "wins", "draws", "losses", "points_for", "points_against", "points",
			"notes", "registration_date").
		Values(item.ID, item.CategoryID, item.SeasonID, item.Name, item.ShortName,
			item.PrimaryColor, item.SecondaryColor, item.Coach.Name, item.Coach.Phone, item.Coach.Email,
			string(item.Status), string(item.PaymentStatus), item.Stats.Wins, item.Stats.Draws, item.Stats.Losses,
			item.Stats.PointsFor, item.Stats.PointsAgainst, item.Stats.Points,
			item.Notes, registered.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// Update writes the editable profile. Stats and payment status have their own writers.
func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("category_public_id", item.CategoryID).
		Set("name", item.Name).
		Set("short_name", item.ShortName).
		Set("primary_color", item.PrimaryColor).
		Set("secondary_color", item.SecondaryColor).
		Set("coach_name", item.Coach.Name).
		Set("coach_phone", item.Coach.Phone).
		Set("coach_email", item.Coach.Email).
		Set("status", string(item.Status)).
		Set("notes", item.Notes).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	return execOne(ctx, r.db, "update team", query, args...)
}

func (r *TeamRepository) UpdatePaymentStatus(ctx context.Context, teamID string, status team.PaymentStatus) error {
	query, args, err := qb.Update("teams").
		Set("payment_status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team payment status query: %w", err)
	}
	return execOne(ctx, r.db, "update team payment status", query, args...)
}

func updateTeamStats(ctx context.Context, exec sqlx.ExecerContext, teamID string, stats team.Stats) error {
	query, args, err := qb.Update("teams").
		Set("wins", stats.Wins).
		Set("draws", stats.Draws).
		Set("losses", stats.Losses).
		Set("points_for", stats.PointsFor).
		Set("points_against", stats.PointsAgainst).
		Set("points", stats.Points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team stats query: %w", err)
	}
	return execOne(ctx, exec, "update team stats", query, args...)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.DeleteFrom("teams").Where(qb.Eq("public_id", teamID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}
	if err := execOne(ctx, r.db, "delete team", query, args...); err != nil {
		return deleteError("delete team", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:             row.PublicID,
		CategoryID:     row.CategoryID,
		SeasonID:       row.SeasonID,
		Name:           row.Name,
		ShortName:      row.ShortName,
		PrimaryColor:   row.PrimaryColor,
		SecondaryColor: row.SecondaryColor,
		Coach: team.Coach{
			Name:  row.CoachName,
			Phone: row.CoachPhone,
			Email: row.CoachEmail,
		},
		Status:        team.Status(row.Status),
		PaymentStatus: team.PaymentStatus(row.PaymentStatus),
		Stats: team.Stats{
			Wins:          row.Wins,
			Draws:         row.Draws,
			Losses:        row.Losses,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
			Points:        row.Points,
		},
		Notes:            row.Notes,
		RegistrationDate: row.RegistrationDate,
	}
}
