package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tochoprime/league-console/internal/domain/player"
	qb "github.com/tochoprime/league-console/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}
	return r.selectRows(ctx, "select players", query, args)
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").Where(qb.Eq("team_public_id", teamID)).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}
	return r.selectRows(ctx, "select players by team", query, args)
}

func (r *PlayerRepository) selectRows(ctx context.Context, what, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").Where(qb.Eq("public_id", playerID)).Limit(1).ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("players").Where(qb.Eq("team_public_id", teamID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players by team: %w", err)
	}
	return count, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	registered := item.RegistrationDate
	if registered.IsZero() {
		registered = time.Now()
	}
	query, args, err := qb.InsertInto("players").
		Columns("public_id", "team_public_id", "name", "last_name", "number",
			"position_vocabulary", "position_code", "email", "phone", "date_of_birth",
			"emergency_name", "emergency_phone", "emergency_relationship",
			"status", "is_captain", "is_vice_captain", "registration_date").
		Values(item.ID, item.TeamID, item.Name, item.LastName, item.Number,
			string(item.Position.Vocabulary), item.Position.Code, item.Email, item.Phone, toNullTime(item.DateOfBirth),
			item.EmergencyContact.Name, item.EmergencyContact.Phone, item.EmergencyContact.Relationship,
			string(item.Status), item.IsCaptain, item.IsViceCaptain, registered.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

// Update writes the form fields. Captaincy is owned by SetCaptain and
// SetViceCaptain, except that a team move clears both flags in the same
// statement so the exclusion constraints never see a stale captain.
func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := buildPlayerUpdate(item)
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	return execOne(ctx, r.db, "update player", query, args...)
}

func buildPlayerUpdate(item player.Player) (string, []any, error) {
	return qb.Update("players").
		Set("team_public_id", item.TeamID).
		Set("name", item.Name).
		Set("last_name", item.LastName).
		Set("number", item.Number).
		Set("position_vocabulary", string(item.Position.Vocabulary)).
		Set("position_code", item.Position.Code).
		Set("email", item.Email).
		Set("phone", item.Phone).
		Set("date_of_birth", toNullTime(item.DateOfBirth)).
		Set("emergency_name", item.EmergencyContact.Name).
		Set("emergency_phone", item.EmergencyContact.Phone).
		Set("emergency_relationship", item.EmergencyContact.Relationship).
		Set("status", string(item.Status)).
		SetExpr("is_captain", "CASE WHEN team_public_id = ? THEN is_captain ELSE FALSE END", item.TeamID).
		SetExpr("is_vice_captain", "CASE WHEN team_public_id = ? THEN is_vice_captain ELSE FALSE END", item.TeamID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
}

func (r *PlayerRepository) UpdateStatus(ctx context.Context, playerID string, status player.Status) error {
	query, args, err := qb.Update("players").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player status query: %w", err)
	}
	return execOne(ctx, r.db, "update player status", query, args...)
}

// SetCaptain rewrites the captain flag of the whole roster in one statement.
// The deferred exclusion constraint on players rejects any second captain.
func (r *PlayerRepository) SetCaptain(ctx context.Context, teamID, playerID string) error {
	return r.assign(ctx, "captain", teamID, playerID, "is_captain", "is_vice_captain")
}

func (r *PlayerRepository) SetViceCaptain(ctx context.Context, teamID, playerID string) error {
	return r.assign(ctx, "vice captain", teamID, playerID, "is_vice_captain", "is_captain")
}

func (r *PlayerRepository) assign(ctx context.Context, role, teamID, playerID, flag, other string) error {
	return withTx(ctx, r.db, "set "+role, func(tx *sqlx.Tx) error {
		query, args, err := qb.Select("public_id").From("players").
			Where(qb.Eq("public_id", playerID), qb.Eq("team_public_id", teamID)).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock %s query: %w", role, err)
		}
		var found string
		if err := tx.GetContext(ctx, &found, query, args...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("player %s not found in team %s", playerID, teamID)
			}
			return fmt.Errorf("lock %s: %w", role, err)
		}

		query, args, err = qb.Update("players").
			SetExpr(flag, "(public_id = ?)", playerID).
			SetExpr(other, "CASE WHEN public_id = ? THEN FALSE ELSE "+other+" END", playerID).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("team_public_id", teamID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build set %s query: %w", role, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("set %s: %w", role, err)
		}
		return nil
	})
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	query, args, err := qb.DeleteFrom("players").Where(qb.Eq("public_id", playerID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}
	return execOne(ctx, r.db, "delete player", query, args...)
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.PublicID,
		TeamID:   row.TeamID,
		Name:     row.Name,
		LastName: row.LastName,
		Number:   row.Number,
		Position: player.Position{
			Vocabulary: player.Vocabulary(row.PositionVocabulary),
			Code:       row.PositionCode,
		},
		Email:       row.Email,
		Phone:       row.Phone,
		DateOfBirth: fromNullTime(row.DateOfBirth),
		EmergencyContact: player.EmergencyContact{
			Name:         row.EmergencyName,
			Phone:        row.EmergencyPhone,
			Relationship: row.EmergencyRelationship,
		},
		Status:           player.Status(row.Status),
		IsCaptain:        row.IsCaptain,
		IsViceCaptain:    row.IsViceCaptain,
		RegistrationDate: row.RegistrationDate,
	}
}
