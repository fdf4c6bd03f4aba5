package memory

import (
	"context"
	"fmt"

	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/team"
)

type PaymentRepository struct {
	store *Store
}

func (r *PaymentRepository) ListByTeam(_ context.Context, teamID string) ([]payment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.payments.filter(func(v payment.Payment) bool { return v.TeamID == teamID }, clonePayment), nil
}

func (r *PaymentRepository) ListBySeason(_ context.Context, seasonID string) ([]payment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.payments.filter(func(v payment.Payment) bool { return v.SeasonID == seasonID }, clonePayment), nil
}

func (r *PaymentRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	items, err := r.ListByTeam(ctx, teamID)
	return len(items), err
}

// Append inserts the payment and the team's new status under the store lock.
func (r *PaymentRepository) Append(_ context.Context, item payment.Payment, price int64) (team.PaymentStatus, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	owner, ok := r.store.teams.get(item.TeamID)
	if !ok {
		return "", fmt.Errorf("team %s not found", item.TeamID)
	}
	if err := r.store.payments.insert(item.ID, clonePayment(item)); err != nil {
		return "", err
	}

	ledger := r.store.payments.filter(func(v payment.Payment) bool { return v.TeamID == item.TeamID }, clonePayment)
	owner.PaymentStatus = payment.DeriveTeamStatus(payment.Total(ledger), price)
	if err := r.store.teams.replace(owner.ID, owner); err != nil {
		_ = r.store.payments.remove(item.ID)
		return "", err
	}
	return owner.PaymentStatus, nil
}

func (r *PaymentRepository) Recompute(_ context.Context, teamID string, price int64) (team.PaymentStatus, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	owner, ok := r.store.teams.get(teamID)
	if !ok {
		return "", false, fmt.Errorf("team %s not found", teamID)
	}
	ledger := r.store.payments.filter(func(v payment.Payment) bool { return v.TeamID == teamID }, identity[payment.Payment])
	next := payment.ReconcileStatus(owner.PaymentStatus, payment.Total(ledger), price)
	if next == owner.PaymentStatus {
		return next, false, nil
	}
	owner.PaymentStatus = next
	if err := r.store.teams.replace(owner.ID, owner); err != nil {
		return "", false, err
	}
	return next, true, nil
}
