package entity

import "time"

type Client struct {
	ID string

	Name  string
	Email string
	Phone *string

	CPF     string
	Address *string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
