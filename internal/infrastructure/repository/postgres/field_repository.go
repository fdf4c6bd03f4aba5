package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tochoprime/league-console/internal/domain/field"
	qb "github.com/tochoprime/league-console/internal/platform/querybuilder"
)

type FieldRepository struct {
	db *sqlx.DB
}

func NewFieldRepository(db *sqlx.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) List(ctx context.Context) ([]field.Field, error) {
	query, args, err := qb.Select("*").From("fields").OrderBy("priority", "code").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fields query: %w", err)
	}

	var rows []fieldTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fields: %w", err)
	}

	out := make([]field.Field, 0, len(rows))
	for _, row := range rows {
		out = append(out, fieldFromRow(row))
	}
	return out, nil
}

func (r *FieldRepository) GetByID(ctx context.Context, fieldID string) (field.Field, bool, error) {
	query, args, err := qb.Select("*").From("fields").Where(qb.Eq("public_id", fieldID)).Limit(1).ToSQL()
	if err != nil {
		return field.Field{}, false, fmt.Errorf("build get field query: %w", err)
	}

	var row fieldTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return field.Field{}, false, nil
		}
		return field.Field{}, false, fmt.Errorf("get field: %w", err)
	}
	return fieldFromRow(row), true, nil
}

func (r *FieldRepository) Create(ctx context.Context, item field.Field) error {
	query, args, err := qb.InsertInto("fields").
		Columns("public_id", "code", "name", "type", "capacity", "status", "priority", "zone",
			"facilities", "address", "city", "notes", "is_active").
		Values(item.ID, item.Code, item.Name, string(item.Type), item.Capacity, string(item.Status), item.Priority,
			string(item.Zone), stringArray(item.Facilities), item.Location.Address, item.Location.City, item.Notes, item.IsActive).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert field query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert field: %w", err)
	}
	return nil
}

func (r *FieldRepository) Update(ctx context.Context, item field.Field) error {
	query, args, err := qb.Update("fields").
		Set("code", item.Code).
		Set("name", item.Name).
		Set("type", string(item.Type)).
		Set("capacity", item.Capacity).
		Set("status", string(item.Status)).
		Set("priority", item.Priority).
		Set("zone", string(item.Zone)).
		Set("facilities", stringArray(item.Facilities)).
		Set("address", item.Location.Address).
		Set("city", item.Location.City).
		Set("notes", item.Notes).
		Set("is_active", item.IsActive).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update field query: %w", err)
	}
	return execOne(ctx, r.db, "update field", query, args...)
}

func (r *FieldRepository) UpdateStatus(ctx context.Context, fieldID string, status field.Status) error {
	query, args, err := qb.Update("fields").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", fieldID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update field status query: %w", err)
	}
	return execOne(ctx, r.db, "update field status", query, args...)
}

func (r *FieldRepository) Delete(ctx context.Context, fieldID string) error {
	query, args, err := qb.DeleteFrom("fields").Where(qb.Eq("public_id", fieldID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete field query: %w", err)
	}
	if err := execOne(ctx, r.db, "delete field", query, args...); err != nil {
		return deleteError("delete field", err)
	}
	return nil
}

func fieldFromRow(row fieldTableModel) field.Field {
	facilities := []string(row.Facilities)
	if facilities == nil {
		facilities = []string{}
	}
	return field.Field{
		ID:         row.PublicID,
		Code:       row.Code,
		Name:       row.Name,
		Type:       field.Type(row.Type),
		Capacity:   row.Capacity,
		Status:     field.Status(row.Status),
		Priority:   row.Priority,
		Zone:       field.Zone(row.Zone),
		Facilities: facilities,
		Location:   field.Location{Address: row.Address, City: row.City},
		Notes:      row.Notes,
		IsActive:   row.IsActive,
	}
}
