package entity

import "time"

type Branch struct {
	ID string

	Name    string
	Address *string
	Phone   *string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
