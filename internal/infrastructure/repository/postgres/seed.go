package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tochoprime/league-console/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo league into an empty database. It is a no-op
// once any season exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	data := memory.SeedDataset()
	return withTx(ctx, db, "seed", func(tx *sqlx.Tx) error {
		for _, s := range data.Seasons {
			if err := seedExec(ctx, tx, "season "+s.ID, `
INSERT INTO seasons (public_id, name, start_date, end_date, is_active, created_at)
VALUES (:public_id, :name, :start_date, :end_date, :is_active, :created_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":  s.ID,
				"name":       s.Name,
				"start_date": toNullTime(s.StartDate),
				"end_date":   toNullTime(s.EndDate),
				"is_active":  s.IsActive,
				"created_at": s.CreatedAt.UTC(),
			}); err != nil {
				return err
			}
		}

		for _, d := range data.Divisions {
			if err := seedExec(ctx, tx, "division "+d.ID, `
INSERT INTO divisions (public_id, season_public_id, name, color)
VALUES (:public_id, :season_public_id, :name, :color)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":        d.ID,
				"season_public_id": d.SeasonID,
				"name":             d.Name,
				"color":            d.Color,
			}); err != nil {
				return err
			}
		}

		for _, c := range data.Categories {
			if err := seedExec(ctx, tx, "category "+c.ID, `
INSERT INTO categories (public_id, division_public_id, season_public_id, name, level, team_limit, player_limit, price, rules, is_active)
VALUES (:public_id, :division_public_id, :season_public_id, :name, :level, :team_limit, :player_limit, :price, :rules, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":          c.ID,
				"division_public_id": c.DivisionID,
				"season_public_id":   c.SeasonID,
				"name":               c.Name,
				"level":              c.Level,
				"team_limit":         c.TeamLimit,
				"player_limit":       c.PlayerLimit,
				"price":              c.Price,
				"rules":              stringArray(c.Rules),
				"is_active":          c.IsActive,
			}); err != nil {
				return err
			}
		}

		for _, t := range data.Teams {
			if err := seedExec(ctx, tx, "team "+t.ID, `
INSERT INTO teams (public_id, category_public_id, season_public_id, name, short_name, primary_color, secondary_color,
	coach_name, coach_phone, coach_email, status, payment_status, registration_date)
VALUES (:public_id, :category_public_id, :season_public_id, :name, :short_name, :primary_color, :secondary_color,
	:coach_name, :coach_phone, :coach_email, :status, :payment_status, :registration_date)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":          t.ID,
				"category_public_id": t.CategoryID,
				"season_public_id":   t.SeasonID,
				"name":               t.Name,
				"short_name":         t.ShortName,
				"primary_color":      t.PrimaryColor,
				"secondary_color":    t.SecondaryColor,
				"coach_name":         t.Coach.Name,
				"coach_phone":        t.Coach.Phone,
				"coach_email":        t.Coach.Email,
				"status":             string(t.Status),
				"payment_status":     string(t.PaymentStatus),
				"registration_date":  t.RegistrationDate.UTC(),
			}); err != nil {
				return err
			}
		}

		for _, ref := range data.Referees {
			if err := seedExec(ctx, tx, "referee "+ref.ID, `
INSERT INTO referees (public_id, season_public_id, name, phone, email, is_active)
VALUES (:public_id, :season_public_id, :name, :phone, :email, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":        ref.ID,
				"season_public_id": ref.SeasonID,
				"name":             ref.Name,
				"phone":            ref.Phone,
				"email":            ref.Email,
				"is_active":        ref.IsActive,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedExec(ctx context.Context, tx *sqlx.Tx, what, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind seed %s query: %w", what, err)
	}
	sqlQuery = tx.Rebind(sqlQuery)
	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("seed %s: %w", what, err)
	}
	return nil
}
