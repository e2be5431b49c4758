package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

var ErrSpaceNotFound = errors.New("space not found")

type SpaceFilter struct {
	BranchID string
	Type     string
	Limit    int32
	Offset   int32
}

type SpaceRepository struct {
	db DBTX
}

func NewSpaceRepository(db DBTX) *SpaceRepository {
	return &SpaceRepository{db: db}
}

const spaceColumns = `id, branch_id, name, type, capacity, price_cents, photo_url,
	details_json, created_at, updated_at`

func (r *SpaceRepository) Create(ctx context.Context, space *entity.Space) error {
	detailsJSON, err := serializeSpaceDetails(space.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO spaces (
			id, branch_id, name, type, capacity, price_cents, photo_url,
			details_json, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		space.ID,
		space.BranchID,
		space.Name,
		space.Type,
		space.Capacity,
		space.PriceCents,
		nullableStringValue(space.PhotoURL),
		detailsJSON,
		space.CreatedAt,
		space.UpdatedAt,
	)
	return err
}

func (r *SpaceRepository) Update(ctx context.Context, space *entity.Space) error {
	detailsJSON, err := serializeSpaceDetails(space.Details)
	if err != nil {
		return err
	}

	query := `
		UPDATE spaces SET
			branch_id = ?,
			name = ?,
			capacity = ?,
			price_cents = ?,
			photo_url = ?,
			details_json = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		space.BranchID,
		space.Name,
		space.Capacity,
		space.PriceCents,
		nullableStringValue(space.PhotoURL),
		detailsJSON,
		space.UpdatedAt,
		space.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSpaceNotFound
	}
	return nil
}

func (r *SpaceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSpaceNotFound
	}
	return nil
}

func (r *SpaceRepository) FindByID(ctx context.Context, id string) (*entity.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE id = ?`

	space := &entity.Space{}
	if err := scanSpace(r.db.QueryRowContext(ctx, query, id), space); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return space, nil
}

// Exists is the narrow lookup the booking core depends on.
func (r *SpaceRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spaces WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SpaceRepository) List(ctx context.Context, filter SpaceFilter) ([]*entity.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces`

	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)

	if strings.TrimSpace(filter.BranchID) != "" {
		conditions = append(conditions, "branch_id = ?")
		args = append(args, filter.BranchID)
	}
	if strings.TrimSpace(filter.Type) != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Type)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY name ASC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spaces := make([]*entity.Space, 0)
	for rows.Next() {
		item := &entity.Space{}
		if err := scanSpace(rows, item); err != nil {
			return nil, err
		}
		spaces = append(spaces, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return spaces, nil
}

func scanSpace(scan rowScanner, space *entity.Space) error {
	var photoURL sql.NullString
	var detailsJSON string

	err := scan.Scan(
		&space.ID,
		&space.BranchID,
		&space.Name,
		&space.Type,
		&space.Capacity,
		&space.PriceCents,
		&photoURL,
		&detailsJSON,
		&space.CreatedAt,
		&space.UpdatedAt,
	)
	if err != nil {
		return err
	}

	space.PhotoURL = stringPtrFromNull(photoURL)

	details, err := parseSpaceDetails(detailsJSON)
	if err != nil {
		return err
	}
	space.Details = details
	return nil
}
