package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/repository"
)

type branchDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type branchStore interface {
	Create(ctx context.Context, branch *entity.Branch) error
	Update(ctx context.Context, branch *entity.Branch) error
	FindByID(ctx context.Context, id string) (*entity.Branch, error)
	List(ctx context.Context, limit, offset int32) ([]*entity.Branch, error)
}

type BranchService struct {
	branches branchStore
}

func NewBranchService(branches branchStore) *BranchService {
	return &BranchService{branches: branches}
}

type SaveBranchInput struct {
	Name    string
	Address *string
	Phone   *string
}

func (in *SaveBranchInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	return nil
}

func (s *BranchService) CreateBranch(ctx context.Context, in *SaveBranchInput) (*entity.Branch, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	branch := &entity.Branch{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *BranchService) UpdateBranch(ctx context.Context, id string, in *SaveBranchInput) (*entity.Branch, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: branch id is required", ErrInvalidRequest)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	branch, err := s.GetBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	branch.Name = in.Name
	branch.Address = in.Address
	branch.Phone = in.Phone
	branch.UpdatedAt = time.Now().UTC()

	if err := s.branches.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeactivateBranch soft-disables the branch; existing reservations
// against its spaces are untouched.
func (s *BranchService) DeactivateBranch(ctx context.Context, id string) (*entity.Branch, error) {
	branch, err := s.GetBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !branch.Active {
		return branch, nil
	}

	branch.Active = false
	branch.UpdatedAt = time.Now().UTC()
	if err := s.branches.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *BranchService) GetBranch(ctx context.Context, id string) (*entity.Branch, error) {
	branch, err := s.branches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBranchNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}
	return branch, nil
}

func (s *BranchService) ListBranches(ctx context.Context, limit, offset int32) ([]*entity.Branch, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.branches.List(ctx, limit, offset)
}
