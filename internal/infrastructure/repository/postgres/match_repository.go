package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/team"
	qb "github.com/tochoprime/league-console/internal/platform/querybuilder"
)

var matchColumns = []string{
	"public_id", "season_public_id", "division_public_id", "home_team_public_id", "away_team_public_id",
	"home_team_name", "home_team_color", "away_team_name", "away_team_color", "field_public_id",
	"round", "match_date", "match_time", "status", "home_score", "away_score", "winner",
	"referee_name", "is_playoff", "playoff_stage", "notes",
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	return r.list(ctx, "season", qb.Eq("season_public_id", seasonID))
}

func (r *MatchRepository) ListByDivision(ctx context.Context, divisionID string) ([]match.Match, error) {
	return r.list(ctx, "division", qb.Eq("division_public_id", divisionID))
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	return r.list(ctx, "team", qb.Expr("(home_team_public_id = ? OR away_team_public_id = ?)", teamID, teamID))
}

func (r *MatchRepository) CountByField(ctx context.Context, fieldID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("matches").Where(qb.Eq("field_public_id", fieldID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches by field query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches by field: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) list(ctx context.Context, scope string, cond qb.Condition) ([]match.Match, error) {
	return listMatches(ctx, r.db, scope, cond)
}

func listMatches(ctx context.Context, q sqlx.QueryerContext, scope string, cond qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").Where(cond).OrderBy("round", "match_date", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by %s query: %w", scope, err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by %s: %w", scope, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").Where(qb.Eq("public_id", matchID)).Limit(1).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	return r.CreateMany(ctx, []match.Match{item})
}

// CreateMany stores a generated calendar in one transaction.
func (r *MatchRepository) CreateMany(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	return withTx(ctx, r.db, "insert matches", func(tx *sqlx.Tx) error {
		insert := qb.InsertInto("matches").Columns(matchColumns...)
		for _, item := range items {
			insert.Values(matchValues(item)...)
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert matches: %w", err)
		}
		return nil
	})
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match, refold []string) error {
	return withTx(ctx, r.db, "update match", func(tx *sqlx.Tx) error {
		if err := lockTeams(ctx, tx, refold); err != nil {
			return err
		}
		query, args, err := buildMatchUpdate(item)
		if err != nil {
			return err
		}
		if err := execOne(ctx, tx, "update match", query, args...); err != nil {
			return err
		}
		return refoldTeamStats(ctx, tx, refold)
	})
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string, refold []string) error {
	return withTx(ctx, r.db, "delete match", func(tx *sqlx.Tx) error {
		if err := lockTeams(ctx, tx, refold); err != nil {
			return err
		}
		query, args, err := qb.DeleteFrom("matches").Where(qb.Eq("public_id", matchID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete match query: %w", err)
		}
		if err := execOne(ctx, tx, "delete match", query, args...); err != nil {
			return err
		}
		return refoldTeamStats(ctx, tx, refold)
	})
}

// lockTeams serializes refolds of the same team. Rows are locked in id order.
func lockTeams(ctx context.Context, tx *sqlx.Tx, teamIDs []string) error {
	if len(teamIDs) == 0 {
		return nil
	}
	query, args, err := qb.Select("public_id").From("teams").
		Where(qb.In("public_id", teamIDs)).
		OrderBy("public_id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock teams query: %w", err)
	}
	var locked []string
	if err := tx.SelectContext(ctx, &locked, query, args...); err != nil {
		return fmt.Errorf("lock teams for refold: %w", err)
	}
	if want := len(uniqueIDs(teamIDs)); len(locked) != want {
		return fmt.Errorf("lock teams for refold: %d of %d teams found", len(locked), want)
	}
	return nil
}

func refoldTeamStats(ctx context.Context, tx *sqlx.Tx, teamIDs []string) error {
	for _, teamID := range teamIDs {
		played, err := listMatches(ctx, tx, "team", qb.Expr("(home_team_public_id = ? OR away_team_public_id = ?)", teamID, teamID))
		if err != nil {
			return err
		}
		if err := updateTeamStats(ctx, tx, teamID, team.StatsFrom(teamID, played)); err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func buildMatchUpdate(item match.Match) (string, []any, error) {
	values := matchValues(item)
	update := qb.Update("matches")
	// public_id is the first column and never changes.
	for idx, column := range matchColumns[1:] {
		update.Set(column, values[idx+1])
	}
	query, args, err := update.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build update match query: %w", err)
	}
	return query, args, nil
}

func matchValues(item match.Match) []any {
	var homeName, homeColor, awayName, awayColor string
	if item.HomeTeam != nil {
		homeName, homeColor = item.HomeTeam.Name, item.HomeTeam.PrimaryColor
	}
	if item.AwayTeam != nil {
		awayName, awayColor = item.AwayTeam.Name, item.AwayTeam.PrimaryColor
	}
	return []any{
		item.ID, item.SeasonID, item.DivisionID, item.HomeTeamID, item.AwayTeamID,
		homeName, homeColor, awayName, awayColor, toNullString(item.FieldID),
		item.Round, item.MatchDate.UTC(), item.MatchTime, string(item.Status),
		toNullInt(item.HomeScore), toNullInt(item.AwayScore), toNullString(string(item.Winner)),
		item.RefereeName, item.IsPlayoff, item.PlayoffStage, item.Notes,
	}
}

func matchFromRow(row matchTableModel) match.Match {
	out := match.Match{
		ID:           row.PublicID,
		SeasonID:     row.SeasonID,
		DivisionID:   row.DivisionID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		FieldID:      row.FieldID.String,
		Round:        row.Round,
		MatchDate:    row.MatchDate,
		MatchTime:    row.MatchTime,
		Status:       match.Status(row.Status),
		HomeScore:    fromNullInt(row.HomeScore),
		AwayScore:    fromNullInt(row.AwayScore),
		Winner:       match.Winner(row.Winner.String),
		RefereeName:  row.RefereeName,
		IsPlayoff:    row.IsPlayoff,
		PlayoffStage: row.PlayoffStage,
		Notes:        row.Notes,
	}
	if row.HomeTeamName != "" {
		out.HomeTeam = &match.TeamSnapshot{Name: row.HomeTeamName, PrimaryColor: row.HomeTeamColor}
	}
	if row.AwayTeamName != "" {
		out.AwayTeam = &match.TeamSnapshot{Name: row.AwayTeamName, PrimaryColor: row.AwayTeamColor}
	}
	return out
}
