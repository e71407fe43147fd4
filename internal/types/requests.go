package types

import "io"

// ------------------------------
// Request Types
// ------------------------------

// DefaultRole is sent on registration when the caller leaves Role empty.
const DefaultRole = "gardener"

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest holds parameters for a new account.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
}

// File is an upload part.
type File struct {
	Name        string // file name reported to the server
	ContentType string // defaults to application/octet-stream
	Reader      io.Reader
}

// CreateUserPlantRequest is sent as multipart form data. Empty text fields
// are not sent.
type CreateUserPlantRequest struct {
	Name     string
	Species  string
	Location string
	Notes    string
	Image    *File
}

// UpdateUserPlantRequest is a partial update: nil fields are not sent.
type UpdateUserPlantRequest struct {
	Name     *string `json:"plantName,omitempty"`
	Species  *string `json:"species,omitempty"`
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// UserPlantSearchQuery filters the user's plants.
type UserPlantSearchQuery struct {
	Query    string
	Species  string
	Location string
}

// SpeciesListQuery filters the plant catalog. Nil/empty fields are omitted
// from the query string.
type SpeciesListQuery struct {
	Page      *int
	Query     string
	Order     string
	Edible    *bool
	Poisonous *bool
	Cycle     string
	Watering  string
	Sunlight  string
	Indoor    *bool
	Hardiness string
}

// Params is an open-ended query parameter set. Nil values are omitted.
type Params map[string]any

// CreateReminderRequest describes a new reminder. DueAt is free-form input
// normalized to the wire format before sending.
type CreateReminderRequest struct {
	Name     string
	Notes    *string
	DueAt    string
	DueDay   []int
	IsActive *bool
	IsProxy  *bool
	Proxy    *string
}

// UpdateReminderRequest is a partial update: nil fields are not sent.
type UpdateReminderRequest struct {
	Name     *string
	Notes    *string
	DueAt    *string
	DueDay   []int
	IsActive *bool
	IsProxy  *bool
	Proxy    *string
}

// ReminderPayload is the create body. Every key is always present.
type ReminderPayload struct {
	Name     string  `json:"name"`
	Notes    *string `json:"notes"`
	DueAt    *string `json:"dueAt"`
	DueDay   []int   `json:"dueDay"`
	IsActive bool    `json:"isActive"`
	IsProxy  bool    `json:"isProxy"`
	Proxy    *string `json:"proxy"`
}

// CreateProxyRequest describes a new proxy contact.
type CreateProxyRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// UpdateProxyRequest is a partial update: nil fields are not sent.
type UpdateProxyRequest struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
}

// ProxySearchQuery filters proxy contacts.
type ProxySearchQuery struct {
	Name        string
	PhoneNumber string
}
