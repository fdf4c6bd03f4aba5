package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/team"
	"github.com/tochoprime/league-console/internal/infrastructure/repository/memory"
	categorymock "github.com/tochoprime/league-console/internal/mocks/domain/category"
	divisionmock "github.com/tochoprime/league-console/internal/mocks/domain/division"
	matchmock "github.com/tochoprime/league-console/internal/mocks/domain/match"
	paymentmock "github.com/tochoprime/league-console/internal/mocks/domain/payment"
	playermock "github.com/tochoprime/league-console/internal/mocks/domain/player"
	seasonmock "github.com/tochoprime/league-console/internal/mocks/domain/season"
	teammock "github.com/tochoprime/league-console/internal/mocks/domain/team"
)

var teamTestNow = time.Date(2025, time.March, 10, 19, 30, 0, 0, time.UTC)

func newTeamServiceForTest(t *testing.T, repos memory.Repositories) *TeamService {
	t.Helper()

	service := NewTeamService(
		repos.Seasons,
		repos.Divisions,
		repos.Categories,
		repos.Teams,
		repos.Players,
		repos.Payments,
		repos.Matches,
		nil,
		newSequence("id-"),
		nopLogger(),
	)
	service.clock = clockwork.NewFakeClockAt(teamTestNow)
	return service
}

func TestTeamService_AddPayment_DerivesStatusFromLedger(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newTeamServiceForTest(t, repos)
	ctx := context.Background()

	steps := []struct {
		amount int64
		want   team.PaymentStatus
	}{
		{amount: 500, want: team.PaymentPartial},
		{amount: 800, want: team.PaymentPartial},
		{amount: 700, want: team.PaymentPaid},
	}
	for idx, step := range steps {
		result, err := service.AddPayment(ctx, "team-lobos", PaymentInput{Amount: step.amount, Method: payment.MethodTransfer})
		if err != nil {
			t.Fatalf("step %d: add payment: %v", idx, err)
		}
		if result.PaymentStatus != step.want {
			t.Fatalf("step %d: unexpected status: got=%s want=%s", idx, result.PaymentStatus, step.want)
		}
		if result.Payment.PaidDate == nil || !result.Payment.PaidDate.Equal(teamTestNow) {
			t.Fatalf("step %d: expected paid date to be stamped", idx)
		}
	}

	stored, err := service.Get(ctx, "team-lobos")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if stored.PaymentStatus != team.PaymentPaid {
		t.Fatalf("team status not persisted: got=%s", stored.PaymentStatus)
	}

	ledger, err := service.ListPayments(ctx, "team-lobos")
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(ledger) != 3 || payment.Total(ledger) != category.DefaultPrice {
		t.Fatalf("unexpected ledger: count=%d total=%d", len(ledger), payment.Total(ledger))
	}
}

func TestTeamService_AddPayment_CancelledDoesNotCount(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newTeamServiceForTest(t, repos)

	result, err := service.AddPayment(context.Background(), "team-toros", PaymentInput{
		Amount: category.DefaultPrice,
		Status: payment.StatusCancelled,
	})
	if err != nil {
		t.Fatalf("add payment: %v", err)
	}
	if result.PaymentStatus != team.PaymentPending {
		t.Fatalf("cancelled payment changed status to %s", result.PaymentStatus)
	}
	if result.Payment.PaidDate != nil {
		t.Fatalf("cancelled payment must not carry a paid date")
	}
}

func TestTeamService_AddPayment_RejectsNonPositiveAmountUsingMockery(t *testing.T) {
	t.Parallel()

	service := NewTeamService(
		seasonmock.NewRepository(t),
		divisionmock.NewRepository(t),
		categorymock.NewRepository(t),
		teammock.NewRepository(t),
		playermock.NewRepository(t),
		paymentmock.NewRepository(t),
		matchmock.NewRepository(t),
		nil,
		newSequence("id-"),
		nopLogger(),
	)

	for _, amount := range []int64{0, -100} {
		if _, err := service.AddPayment(context.Background(), "team-1", PaymentInput{Amount: amount}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("amount %d: expected ErrInvalidInput, got %v", amount, err)
		}
	}
}

func TestTeamService_AddPayment_StorageFailureUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	categoryRepo := categorymock.NewRepository(t)
	paymentRepo := paymentmock.NewRepository(t)
	service := NewTeamService(
		seasonmock.NewRepository(t),
		divisionmock.NewRepository(t),
		categoryRepo,
		teamRepo,
		playermock.NewRepository(t),
		paymentRepo,
		matchmock.NewRepository(t),
		nil,
		newSequence("pay-"),
		nopLogger(),
	)

	teamRepo.
		On("GetByID", mock.Anything, "team-1").
		Return(team.Team{ID: "team-1", CategoryID: "cat-1", SeasonID: "season-1"}, true, nil).
		Once()
	categoryRepo.
		On("GetByID", mock.Anything, "cat-1").
		Return(category.Category{ID: "cat-1", Price: 2000}, true, nil).
		Once()
	paymentRepo.
		On("Append", mock.Anything, mock.MatchedBy(func(v payment.Payment) bool {
			return v.ID == "pay-1" && v.Amount == 900 && v.Method == payment.MethodCash && v.Status == payment.StatusPaid
		}), int64(2000)).
		Return(team.PaymentStatus(""), errors.New("connection reset")).
		Once()

	_, err := service.AddPayment(context.Background(), "team-1", PaymentInput{Amount: 900})
	if err == nil {
		t.Fatalf("expected storage error")
	}
}

func TestTeamService_MarkPaymentOverdue(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newTeamServiceForTest(t, repos)
	ctx := context.Background()

	got, err := service.MarkPaymentOverdue(ctx, "team-halcones")
	if err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	if got.PaymentStatus != team.PaymentOverdue {
		t.Fatalf("unexpected status: %s", got.PaymentStatus)
	}

	if _, err := service.AddPayment(ctx, "team-coyotes", PaymentInput{Amount: category.DefaultPrice}); err != nil {
		t.Fatalf("add payment: %v", err)
	}
	if _, err := service.MarkPaymentOverdue(ctx, "team-coyotes"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a paid team, got %v", err)
	}
}

func TestTeamService_ReconcilePaymentStatuses(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newTeamServiceForTest(t, repos)
	ctx := context.Background()

	if _, err := service.MarkPaymentOverdue(ctx, "team-halcones"); err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	// Drift the stored status away from the ledger.
	if _, err := service.AddPayment(ctx, "team-lobos", PaymentInput{Amount: 300}); err != nil {
		t.Fatalf("add payment: %v", err)
	}
	if err := repos.Teams.UpdatePaymentStatus(ctx, "team-lobos", team.PaymentPending); err != nil {
		t.Fatalf("force status: %v", err)
	}

	result, err := service.ReconcilePaymentStatuses(ctx, memory.SeedSeasonID, 2)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.Checked != 4 || result.Updated != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	lobos, _ := service.Get(ctx, "team-lobos")
	if lobos.PaymentStatus != team.PaymentPartial {
		t.Fatalf("expected lobos partial, got %s", lobos.PaymentStatus)
	}
	halcones, _ := service.Get(ctx, "team-halcones")
	if halcones.PaymentStatus != team.PaymentOverdue {
		t.Fatalf("overdue must survive reconcile, got %s", halcones.PaymentStatus)
	}

	if _, err := service.ReconcilePaymentStatuses(ctx, " ", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// appendBeforeRecompute commits a payment after the reconcile pass has
// snapshotted the season's teams but before the team's status is recomputed.
type appendBeforeRecompute struct {
	payment.Repository
	entry    payment.Payment
	price    int64
	reported team.PaymentStatus
}

func (r *appendBeforeRecompute) Recompute(ctx context.Context, teamID string, price int64) (team.PaymentStatus, bool, error) {
	if teamID == r.entry.TeamID && r.reported == "" {
		status, err := r.Repository.Append(ctx, r.entry, r.price)
		if err != nil {
			return "", false, err
		}
		r.reported = status
	}
	return r.Repository.Recompute(ctx, teamID, price)
}

func TestTeamService_ReconcileKeepsConcurrentPayment(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	ctx := context.Background()

	if _, err := repos.Payments.Append(ctx, payment.Payment{
		ID: "pay-first", TeamID: "team-lobos", SeasonID: memory.SeedSeasonID, Amount: 300, Status: payment.StatusPaid,
	}, category.DefaultPrice); err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	racing := &appendBeforeRecompute{
		Repository: repos.Payments,
		entry: payment.Payment{
			ID: "pay-racing", TeamID: "team-lobos", SeasonID: memory.SeedSeasonID, Amount: category.DefaultPrice, Status: payment.StatusPaid,
		},
		price: category.DefaultPrice,
	}
	service := NewTeamService(
		repos.Seasons,
		repos.Divisions,
		repos.Categories,
		repos.Teams,
		repos.Players,
		racing,
		repos.Matches,
		nil,
		newSequence("id-"),
		nopLogger(),
	)

	if _, err := service.ReconcilePaymentStatuses(ctx, memory.SeedSeasonID, 1); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if racing.reported != team.PaymentPaid {
		t.Fatalf("append reported %s", racing.reported)
	}
	stored, err := service.Get(ctx, "team-lobos")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if stored.PaymentStatus != team.PaymentPaid {
		t.Fatalf("reconcile overwrote a concurrent payment: stored %s", stored.PaymentStatus)
	}
}

func TestTeamService_AddPlayer_AndCaptaincy(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newTeamServiceForTest(t, repos)
	ctx := context.Background()

	first, err := service.AddPlayer(ctx, "team-toros", PlayerInput{Name: "Diego", LastName: "Salas", Number: 12, Position: "quarterback", Phone: "55 1234 5678"})
	if err != nil {
		t.Fatalf("add first player: %v", err)
	}
	if first.Position.Vocabulary != player.VocabularyFlagFootball {
		t.Fatalf("roster player must use flag football vocabulary, got %s", first.Position.Vocabulary)
	}
	if first.Phone != "+525512345678" {
		t.Fatalf("phone not normalized: %s", first.Phone)
	}
	second, err := service.AddPlayer(ctx, "team-toros", PlayerInput{Name: "Iván", Number: 7, Position: "safety"})
	if err != nil {
		t.Fatalf("add second player: %v", err)
	}

	if _, err := service.AddPlayer(ctx, "team-toros", PlayerInput{Name: "Sin número"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing number, got %v", err)
	}
	if _, err := service.AddPlayer(ctx, "team-toros", PlayerInput{Name: "Portero", Number: 1, Position: "portero"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for generic position, got %v", err)
	}

	roster, err := service.SetCaptain(ctx, "team-toros", first.ID)
	if err != nil {
		t.Fatalf("set captain: %v", err)
	}
	roster, err = service.SetCaptain(ctx, "team-toros", second.ID)
	if err != nil {
		t.Fatalf("move captain: %v", err)
	}
	if roster[0].ID != second.ID {
		t.Fatalf("roster not sorted by number: %s first", roster[0].ID)
	}
	captains := 0
	for _, item := range roster {
		if item.IsCaptain {
			captains++
			if item.ID != second.ID {
				t.Fatalf("unexpected captain %s", item.ID)
			}
		}
	}
	if captains != 1 {
		t.Fatalf("expected exactly one captain, got %d", captains)
	}

	roster, err = service.SetViceCaptain(ctx, "team-toros", second.ID)
	if err != nil {
		t.Fatalf("set vice captain: %v", err)
	}
	for _, item := range roster {
		if item.ID == second.ID && (!item.IsViceCaptain || item.IsCaptain) {
			t.Fatalf("vice captain must clear captaincy on the same player: %+v", item)
		}
	}

	if _, err := service.SetCaptain(ctx, "team-lobos", first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for player of another team, got %v", err)
	}
}

func TestTeamService_GetDetail(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newTeamServiceForTest(t, repos)
	ctx := context.Background()

	if _, err := service.AddPayment(ctx, "team-halcones", PaymentInput{Amount: 1200}); err != nil {
		t.Fatalf("add payment: %v", err)
	}
	if _, err := service.AddPlayer(ctx, "team-halcones", PlayerInput{Name: "Rafa", Number: 3}); err != nil {
		t.Fatalf("add player: %v", err)
	}
	played := match.Match{
		ID:         "match-1",
		SeasonID:   memory.SeedSeasonID,
		DivisionID: memory.SeedDivisionVaronil,
		HomeTeamID: "team-halcones",
		AwayTeamID: "team-lobos",
		Round:      1,
		MatchDate:  teamTestNow,
		Status:     match.StatusScheduled,
	}
	if err := repos.Matches.Create(ctx, played.Complete(21, 14)); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	detail, err := service.GetDetail(ctx, "team-halcones")
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail.Division.ID != memory.SeedDivisionVaronil || detail.Season.ID != memory.SeedSeasonID {
		t.Fatalf("unexpected ancestry: division=%s season=%s", detail.Division.ID, detail.Season.ID)
	}
	if detail.Balance.Total != 1200 || detail.Balance.Remaining != category.DefaultPrice-1200 {
		t.Fatalf("unexpected balance: %+v", detail.Balance)
	}
	if len(detail.Players) != 1 || len(detail.Payments) != 1 || len(detail.RecentMatches) != 1 {
		t.Fatalf("unexpected detail sizes: players=%d payments=%d matches=%d", len(detail.Players), len(detail.Payments), len(detail.RecentMatches))
	}

	if _, err := service.GetDetail(ctx, "team-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_CreateAndDelete(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newTeamServiceForTest(t, repos)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateTeamInput{
		CategoryID: memory.SeedCategoryVaronil,
		Name:       " Pumas ",
		ShortName:  "pum",
		Coach:      team.Coach{Name: "Ana", Email: " ANA@EXAMPLE.COM "},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.Name != "Pumas" || created.ShortName != "PUM" || created.SeasonID != memory.SeedSeasonID {
		t.Fatalf("unexpected team: %+v", created)
	}
	if created.PaymentStatus != team.PaymentPending || !created.RegistrationDate.Equal(teamTestNow) {
		t.Fatalf("unexpected registration defaults: %+v", created)
	}
	if created.Coach.Email != "ana@example.com" {
		t.Fatalf("coach email not normalized: %s", created.Coach.Email)
	}

	if _, err := service.Create(ctx, CreateTeamInput{CategoryID: memory.SeedCategoryVaronil}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if err := service.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete empty team: %v", err)
	}
	if _, err := service.AddPayment(ctx, "team-lobos", PaymentInput{Amount: 100}); err != nil {
		t.Fatalf("add payment: %v", err)
	}
	if err := service.Delete(ctx, "team-lobos"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for team with payments, got %v", err)
	}
}

func TestTeamService_List(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newTeamServiceForTest(t, repos)
	ctx := context.Background()

	byDivision, err := service.List(ctx, ListTeamsQuery{DivisionID: memory.SeedDivisionVaronil})
	if err != nil {
		t.Fatalf("list by division: %v", err)
	}
	if len(byDivision) != 4 {
		t.Fatalf("unexpected team count: %d", len(byDivision))
	}
	empty, err := service.List(ctx, ListTeamsQuery{DivisionID: memory.SeedDivisionFemenil})
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty division: len=%d err=%v", len(empty), err)
	}
	if _, err := service.List(ctx, ListTeamsQuery{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
