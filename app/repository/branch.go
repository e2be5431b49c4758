package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

var ErrBranchNotFound = errors.New("branch not found")

type BranchRepository struct {
	db DBTX
}

func NewBranchRepository(db DBTX) *BranchRepository {
	return &BranchRepository{db: db}
}

const branchColumns = `id, name, address, phone, active, created_at, updated_at`

func (r *BranchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	query := `
		INSERT INTO branches (id, name, address, phone, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		branch.ID,
		branch.Name,
		nullableStringValue(branch.Address),
		nullableStringValue(branch.Phone),
		branch.Active,
		branch.CreatedAt,
		branch.UpdatedAt,
	)
	return err
}

func (r *BranchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	query := `
		UPDATE branches SET
			name = ?,
			address = ?,
			phone = ?,
			active = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		branch.Name,
		nullableStringValue(branch.Address),
		nullableStringValue(branch.Phone),
		branch.Active,
		branch.UpdatedAt,
		branch.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBranchNotFound
	}
	return nil
}

func (r *BranchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBranchNotFound
	}
	return nil
}

func (r *BranchRepository) FindByID(ctx context.Context, id string) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = ?`

	branch := &entity.Branch{}
	if err := scanBranch(r.db.QueryRowContext(ctx, query, id), branch); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *BranchRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM branches WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BranchRepository) List(ctx context.Context, limit, offset int32) ([]*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY name ASC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := make([]*entity.Branch, 0)
	for rows.Next() {
		item := &entity.Branch{}
		if err := scanBranch(rows, item); err != nil {
			return nil, err
		}
		branches = append(branches, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return branches, nil
}

func scanBranch(scan rowScanner, branch *entity.Branch) error {
	var address sql.NullString
	var phone sql.NullString

	err := scan.Scan(
		&branch.ID,
		&branch.Name,
		&address,
		&phone,
		&branch.Active,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)
	if err != nil {
		return err
	}

	branch.Address = stringPtrFromNull(address)
	branch.Phone = stringPtrFromNull(phone)
	return nil
}
