package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tochoprime/league-console/internal/domain/category"
	qb "github.com/tochoprime/league-console/internal/platform/querybuilder"
)

const categoryNameConstraint = "categories_division_name_key"

var categoryColumns = []string{
	"public_id", "division_public_id", "season_public_id", "name", "level",
	"team_limit", "player_limit", "price", "rules", "is_active",
}

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListByDivision(ctx context.Context, divisionID string) ([]category.Category, error) {
	query, args, err := qb.Select("*").From("categories").
		Where(qb.Eq("division_public_id", divisionID)).
		OrderBy("level", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select categories query: %w", err)
	}

	var rows []categoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select categories by division: %w", err)
	}

	out := make([]category.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryFromRow(row))
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID string) (category.Category, bool, error) {
	query, args, err := qb.Select("*").From("categories").Where(qb.Eq("public_id", categoryID)).Limit(1).ToSQL()
	if err != nil {
		return category.Category{}, false, fmt.Errorf("build get category query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return category.Category{}, false, nil
		}
		return category.Category{}, false, fmt.Errorf("get category: %w", err)
	}
	return categoryFromRow(row), true, nil
}

func (r *CategoryRepository) Create(ctx context.Context, item category.Category) error {
	return r.CreateMany(ctx, []category.Category{item})
}

// CreateMany inserts every category in a single statement, so either all
// rows land or none do.
func (r *CategoryRepository) CreateMany(ctx context.Context, items []category.Category) error {
	if len(items) == 0 {
		return nil
	}

	insert := qb.InsertInto("categories").Columns(categoryColumns...)
	for _, item := range items {
		insert.Values(
			item.ID, item.DivisionID, item.SeasonID, item.Name, item.Level,
			item.TeamLimit, item.PlayerLimit, item.Price, stringArray(item.Rules), item.IsActive,
		)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert categories query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return categoryWriteError("insert categories", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, item category.Category) error {
	query, args, err := qb.Update("categories").
		Set("name", item.Name).
		Set("level", item.Level).
		Set("team_limit", item.TeamLimit).
		Set("player_limit", item.PlayerLimit).
		Set("price", item.Price).
		Set("rules", stringArray(item.Rules)).
		Set("is_active", item.IsActive).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update category query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return categoryWriteError("update category", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("update category rows affected: %w", err)
	} else if affected == 0 {
		return fmt.Errorf("update category: not found")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID string) error {
	query, args, err := qb.DeleteFrom("categories").Where(qb.Eq("public_id", categoryID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete category query: %w", err)
	}
	if err := execOne(ctx, r.db, "delete category", query, args...); err != nil {
		return deleteError("delete category", err)
	}
	return nil
}

func categoryWriteError(what string, err error) error {
	if isUniqueViolation(err) && pqConstraint(err) == categoryNameConstraint {
		return fmt.Errorf("%s: %w", what, category.ErrDuplicateName)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func categoryFromRow(row categoryTableModel) category.Category {
	rules := []string(row.Rules)
	if rules == nil {
		rules = []string{}
	}
	return category.Category{
		ID:          row.PublicID,
		DivisionID:  row.DivisionID,
		SeasonID:    row.SeasonID,
		Name:        row.Name,
		Level:       row.Level,
		TeamLimit:   row.TeamLimit,
		PlayerLimit: row.PlayerLimit,
		Price:       row.Price,
		Rules:       rules,
		IsActive:    row.IsActive,
	}
}
