package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrClientAlreadyExists = errors.New("client already exists")
)

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, name, email, phone, cpf, address, active, created_at, updated_at`

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone, cpf, address, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		nullableStringValue(client.Phone),
		client.CPF,
		nullableStringValue(client.Address),
		client.Active,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrClientAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients SET
			name = ?,
			email = ?,
			phone = ?,
			address = ?,
			active = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		client.Name,
		client.Email,
		nullableStringValue(client.Phone),
		nullableStringValue(client.Address),
		client.Active,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrClientAlreadyExists
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Delete marks the client inactive. Rows are never removed so past
// reservations keep a valid reference.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE clients SET active = FALSE, updated_at = ? WHERE id = ? AND active = TRUE`, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`

	client := &entity.Client{}
	if err := scanClient(r.db.QueryRowContext(ctx, query, id), client); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return client, nil
}

// Exists reports whether an active client with the given id is registered.
func (r *ClientRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients WHERE id = ? AND active = TRUE`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ClientRepository) List(ctx context.Context, limit, offset int32) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name ASC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*entity.Client, 0)
	for rows.Next() {
		item := &entity.Client{}
		if err := scanClient(rows, item); err != nil {
			return nil, err
		}
		clients = append(clients, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

func scanClient(scan rowScanner, client *entity.Client) error {
	var phone sql.NullString
	var address sql.NullString

	err := scan.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&phone,
		&client.CPF,
		&address,
		&client.Active,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return err
	}

	client.Phone = stringPtrFromNull(phone)
	client.Address = stringPtrFromNull(address)
	return nil
}
