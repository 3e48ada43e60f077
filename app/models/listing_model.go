package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultImageFilename = "default-image"
	DefaultImageURL      = "https://images.pexels.com/photos/994605/pexels-photo-994605.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1"
)

type Listing struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	Location      string     `json:"location"`
	Country       string     `json:"country"`
	ImageFilename string     `json:"image_filename"`
	ImageURL      string     `json:"image_url"`
	OwnerID       *uuid.UUID `json:"owner_id,omitempty"`
	OwnerUsername string     `json:"owner_username,omitempty"`
	IsBooked      bool       `json:"is_booked"`
	BookedBy      *uuid.UUID `json:"booked_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateListingRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" form:"description" validate:"required,min=10"`
	Price       *float64 `json:"price" form:"price" validate:"required,gte=0"`
	Location    string   `json:"location" form:"location" validate:"required"`
	Country     string   `json:"country" form:"country" validate:"required,alphaspace"`
	Image       string   `json:"image" form:"image" validate:"omitempty,url"`
}

type UpdateListingRequest struct {
	Title       *string  `json:"title" form:"title" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description" form:"description" validate:"omitempty,min=10"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	Location    *string  `json:"location" form:"location" validate:"omitempty,min=1"`
	Country     *string  `json:"country" form:"country" validate:"omitempty,alphaspace"`
	Image       *string  `json:"image" form:"image" validate:"omitempty,url"`
}
