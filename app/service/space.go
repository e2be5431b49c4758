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

type spaceStore interface {
	Create(ctx context.Context, space *entity.Space) error
	Update(ctx context.Context, space *entity.Space) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Space, error)
	List(ctx context.Context, filter repository.SpaceFilter) ([]*entity.Space, error)
}

type spaceHoldChecker interface {
	HasHoldingFrom(ctx context.Context, spaceID string, from time.Time) (bool, error)
}

type SpaceService struct {
	spaces       spaceStore
	branches     branchDirectory
	reservations spaceHoldChecker
	availability *ReservationService
}

func NewSpaceService(
	spaces spaceStore,
	branches branchDirectory,
	reservations spaceHoldChecker,
	availability *ReservationService,
) *SpaceService {
	return &SpaceService{
		spaces:       spaces,
		branches:     branches,
		reservations: reservations,
		availability: availability,
	}
}

type SaveSpaceInput struct {
	BranchID   string
	Name       string
	Type       string
	Capacity   int32
	PriceCents int64
	PhotoURL   *string
	Details    entity.SpaceDetails
}

func (in *SaveSpaceInput) validate() error {
	if in.BranchID == "" {
		return fmt.Errorf("%w: branch id is required", ErrInvalidRequest)
	}
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if !entity.ValidSpaceType(in.Type) {
		return fmt.Errorf("%w: unknown space type %q", ErrInvalidRequest, in.Type)
	}
	if in.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidRequest)
	}
	if in.PriceCents <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidRequest)
	}
	return nil
}

func (s *SpaceService) CreateSpace(ctx context.Context, in *SaveSpaceInput) (*entity.Space, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.branches.Exists(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBranchNotFound
	}

	now := time.Now().UTC()
	space := &entity.Space{
		ID:         uuid.NewString(),
		BranchID:   in.BranchID,
		Name:       in.Name,
		Type:       in.Type,
		Capacity:   in.Capacity,
		PriceCents: in.PriceCents,
		PhotoURL:   in.PhotoURL,
		Details:    in.Details,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.spaces.Create(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *SpaceService) UpdateSpace(ctx context.Context, id string, in *SaveSpaceInput) (*entity.Space, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: space id is required", ErrInvalidRequest)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	space, err := s.GetSpace(ctx, id)
	if err != nil {
		return nil, err
	}

	if space.BranchID != in.BranchID {
		exists, err := s.branches.Exists(ctx, in.BranchID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrBranchNotFound
		}
	}

	space.BranchID = in.BranchID
	space.Name = in.Name
	space.Type = in.Type
	space.Capacity = in.Capacity
	space.PriceCents = in.PriceCents
	space.PhotoURL = in.PhotoURL
	space.Details = in.Details
	space.UpdatedAt = time.Now().UTC()

	if err := s.spaces.Update(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

// DeleteSpace refuses to remove a space that still holds upcoming
// paid reservations.
func (s *SpaceService) DeleteSpace(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: space id is required", ErrInvalidRequest)
	}

	if _, err := s.GetSpace(ctx, id); err != nil {
		return err
	}

	held, err := s.reservations.HasHoldingFrom(ctx, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if held {
		return ErrSpaceInUse
	}

	return s.spaces.Delete(ctx, id)
}

func (s *SpaceService) GetSpace(ctx context.Context, id string) (*entity.Space, error) {
	space, err := s.spaces.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}
	if space == nil {
		return nil, ErrSpaceNotFound
	}
	return space, nil
}

func (s *SpaceService) ListSpaces(ctx context.Context, filter repository.SpaceFilter) ([]*entity.Space, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.spaces.List(ctx, filter)
}

// ListAvailableSpaces narrows a listing to spaces free for the given
// window. The answer is advisory; confirmation re-checks under lock.
func (s *SpaceService) ListAvailableSpaces(ctx context.Context, filter repository.SpaceFilter, window entity.TimeWindow) ([]*entity.Space, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, entity.ErrInvalidWindow)
	}

	spaces, err := s.ListSpaces(ctx, filter)
	if err != nil {
		return nil, err
	}

	available := make([]*entity.Space, 0, len(spaces))
	for _, space := range spaces {
		free, err := s.availability.CheckAvailability(ctx, space.ID, window)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, space)
		}
	}
	return available, nil
}
