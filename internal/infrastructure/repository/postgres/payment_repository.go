package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/team"
	qb "github.com/tochoprime/league-console/internal/platform/querybuilder"
)

// PaymentRepository only appends. The payments table also rejects UPDATE and
// DELETE through a trigger.
type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) ListByTeam(ctx context.Context, teamID string) ([]payment.Payment, error) {
	return listPayments(ctx, r.db, "team", qb.Eq("team_public_id", teamID))
}

func (r *PaymentRepository) ListBySeason(ctx context.Context, seasonID string) ([]payment.Payment, error) {
	return listPayments(ctx, r.db, "season", qb.Eq("season_public_id", seasonID))
}

func listPayments(ctx context.Context, q sqlx.QueryerContext, scope string, cond qb.Condition) ([]payment.Payment, error) {
	query, args, err := qb.Select("*").From("payments").Where(cond).OrderBy("payment_date", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select payments by %s query: %w", scope, err)
	}

	var rows []paymentTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select payments by %s: %w", scope, err)
	}

	out := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, paymentFromRow(row))
	}
	return out, nil
}

func (r *PaymentRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("payments").Where(qb.Eq("team_public_id", teamID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count payments query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count payments by team: %w", err)
	}
	return count, nil
}

// Append locks the team row, inserts the payment, and stores the status
// derived from the team's full ledger before committing.
func (r *PaymentRepository) Append(ctx context.Context, item payment.Payment, price int64) (team.PaymentStatus, error) {
	var status team.PaymentStatus
	err := withTx(ctx, r.db, "append payment", func(tx *sqlx.Tx) error {
		query, args, err := qb.Select("public_id").From("teams").
			Where(qb.Eq("public_id", item.TeamID)).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock team query: %w", err)
		}
		var locked string
		if err := tx.GetContext(ctx, &locked, query, args...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("team %s not found", item.TeamID)
			}
			return fmt.Errorf("lock team for payment: %w", err)
		}

		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		query, args, err = qb.InsertInto("payments").
			Columns("public_id", "team_public_id", "season_public_id", "amount", "payment_date", "method",
				"reference", "notes", "status", "paid_date", "invoice_number", "created_by", "created_at").
			Values(item.ID, item.TeamID, item.SeasonID, item.Amount, item.Date.UTC(), string(item.Method),
				item.Reference, item.Notes, string(item.Status), toNullTime(item.PaidDate), item.InvoiceNumber,
				item.CreatedBy, createdAt.UTC()).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build insert payment query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		ledger, err := listPayments(ctx, tx, "team", qb.Eq("team_public_id", item.TeamID))
		if err != nil {
			return err
		}
		status = payment.DeriveTeamStatus(payment.Total(ledger), price)

		query, args, err = qb.Update("teams").
			Set("payment_status", string(status)).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("public_id", item.TeamID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update team payment status query: %w", err)
		}
		return execOne(ctx, tx, "update team payment status", query, args...)
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// Recompute takes the same team row lock as Append, so a reconcile pass never
// overwrites the status of a payment committed after its ledger read.
func (r *PaymentRepository) Recompute(ctx context.Context, teamID string, price int64) (team.PaymentStatus, bool, error) {
	var (
		next    team.PaymentStatus
		changed bool
	)
	err := withTx(ctx, r.db, "recompute payment status", func(tx *sqlx.Tx) error {
		query, args, err := qb.Select("payment_status").From("teams").
			Where(qb.Eq("public_id", teamID)).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock team query: %w", err)
		}
		var current string
		if err := tx.GetContext(ctx, &current, query, args...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("team %s not found", teamID)
			}
			return fmt.Errorf("lock team for recompute: %w", err)
		}

		ledger, err := listPayments(ctx, tx, "team", qb.Eq("team_public_id", teamID))
		if err != nil {
			return err
		}
		next = payment.ReconcileStatus(team.PaymentStatus(current), payment.Total(ledger), price)
		if string(next) == current {
			return nil
		}

		query, args, err = qb.Update("teams").
			Set("payment_status", string(next)).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("public_id", teamID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update team payment status query: %w", err)
		}
		if err := execOne(ctx, tx, "update team payment status", query, args...); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return next, changed, nil
}

func paymentFromRow(row paymentTableModel) payment.Payment {
	return payment.Payment{
		ID:            row.PublicID,
		TeamID:        row.TeamID,
		SeasonID:      row.SeasonID,
		Amount:        row.Amount,
		Date:          row.PaymentDate,
		Method:        payment.Method(row.Method),
		Reference:     row.Reference,
		Notes:         row.Notes,
		Status:        payment.Status(row.Status),
		PaidDate:      fromNullTime(row.PaidDate),
		InvoiceNumber: row.InvoiceNumber,
		CreatedBy:     row.CreatedBy,
		CreatedAt:     row.CreatedAt,
	}
}
