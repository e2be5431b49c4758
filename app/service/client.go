package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/repository"
)

type clientStore interface {
	Create(ctx context.Context, client *entity.Client) error
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int32) ([]*entity.Client, error)
}

type ClientService struct {
	clients clientStore
}

func NewClientService(clients clientStore) *ClientService {
	return &ClientService{clients: clients}
}

type SaveClientInput struct {
	Name    string
	Email   string
	Phone   *string
	CPF     string
	Address *string
}

func (in *SaveClientInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidRequest)
	}
	if len(onlyDigits(in.CPF)) != 11 {
		return fmt.Errorf("%w: cpf must have 11 digits", ErrInvalidRequest)
	}
	return nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *ClientService) CreateClient(ctx context.Context, in *SaveClientInput) (*entity.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &entity.Client{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     strings.ToLower(in.Email),
		Phone:     in.Phone,
		CPF:       onlyDigits(in.CPF),
		Address:   in.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrClientAlreadyExists) {
			return nil, ErrClientAlreadyExists
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, in *SaveClientInput) (*entity.Client, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrInvalidRequest)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Email = strings.ToLower(in.Email)
	client.Phone = in.Phone
	client.CPF = onlyDigits(in.CPF)
	client.Address = in.Address
	client.UpdatedAt = time.Now().UTC()

	if err := s.clients.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrClientAlreadyExists) {
			return nil, ErrClientAlreadyExists
		}
		return nil, err
	}
	return client, nil
}

// DeactivateClient soft-deletes the client. History is preserved and
// past reservations keep referencing the row.
func (s *ClientService) DeactivateClient(ctx context.Context, id string) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}
	return s.clients.Delete(ctx, id)
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context, limit, offset int32) ([]*entity.Client, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.clients.List(ctx, limit, offset)
}
