package entity

import "time"

const (
	SpaceTypeHall  = "SALAO"
	SpaceTypeRanch = "CHACARA"
	SpaceTypeCourt = "QUADRA_ESPORTIVA"
)

func ValidSpaceType(spaceType string) bool {
	switch spaceType {
	case SpaceTypeHall, SpaceTypeRanch, SpaceTypeCourt:
		return true
	default:
		return false
	}
}

// SpaceDetails carries the type-specific attributes of a space as a tagged
// variant: only the fields matching the space's Type are meaningful. The
// booking core never reads them.
type SpaceDetails struct {
	// SALAO
	KitchenSize string `json:"kitchen_size,omitempty"`
	ChairCount  int32  `json:"chair_count,omitempty"`
	TotalArea   float64 `json:"total_area,omitempty"`

	// CHACARA
	HasPool         bool  `json:"has_pool,omitempty"`
	BedroomCount    int32 `json:"bedroom_count,omitempty"`
	LeisureArea     string `json:"leisure_area,omitempty"`
	ParkingCapacity int32 `json:"parking_capacity,omitempty"`

	// QUADRA_ESPORTIVA
	FloorType string `json:"floor_type,omitempty"`
	Sports    string `json:"sports,omitempty"`
}

type Space struct {
	ID string

	BranchID string

	Name string
	Type string

	Capacity   int32
	PriceCents int64
	PhotoURL   *string

	Details SpaceDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}
