package types

import (
	"time"

	"github.com/leafkeeper/leafkeeper-client/internal/schedule"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// User is the normalized identity record. ID and Email are always set.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Username    string `json:"username,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// UserPlant is a plant owned by a user.
type UserPlant struct {
	ID        string `json:"id"`
	UserID    string `json:"userId,omitempty"`
	Name      string `json:"name"`
	Species   string `json:"species,omitempty"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Reminder is a scheduled care action. DueAt uses the schedule.DueAtLayout
// wire format; DueDay holds weekday indices (0=Sunday).
type Reminder struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Notes    *string `json:"notes,omitempty"`
	DueAt    *string `json:"dueAt,omitempty"`
	DueDay   []int   `json:"dueDay,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
	IsProxy  *bool   `json:"isProxy,omitempty"`
	Proxy    *string `json:"proxy,omitempty"`
}

// Category infers the care category from the reminder name.
func (r Reminder) Category() schedule.Category {
	return schedule.InferCategory(r.Name)
}

// DueTime parses DueAt. ok is false when DueAt is absent or malformed.
func (r Reminder) DueTime() (t time.Time, ok bool) {
	if r.DueAt == nil {
		return time.Time{}, false
	}
	t, err := schedule.ParseDueAt(*r.DueAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ProxyContact is a delegate caregiver. Dates are free text.
type ProxyContact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// Start parses StartDate; an unparsable date counts as absent.
func (p ProxyContact) Start() (time.Time, bool) { return schedule.ParseLooseDate(p.StartDate) }

// End parses EndDate; an unparsable date counts as absent.
func (p ProxyContact) End() (time.Time, bool) { return schedule.ParseLooseDate(p.EndDate) }

// ActiveOn reports whether t falls inside the delegation window. Missing
// bounds are open; EndDate is inclusive of the whole day.
func (p ProxyContact) ActiveOn(t time.Time) bool {
	if start, ok := p.Start(); ok && t.Before(start) {
		return false
	}
	if end, ok := p.End(); ok && !t.Before(end.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// ------------------------------
// Plant catalog (pass-through shapes)
// ------------------------------

// ImageDescriptor lists the resolutions available for a catalog image.
type ImageDescriptor struct {
	License      int    `json:"license,omitempty"`
	LicenseName  string `json:"license_name,omitempty"`
	LicenseURL   string `json:"license_url,omitempty"`
	OriginalURL  string `json:"original_url,omitempty"`
	RegularURL   string `json:"regular_url,omitempty"`
	MediumURL    string `json:"medium_url,omitempty"`
	SmallURL     string `json:"small_url,omitempty"`
	ThumbnailURL string `json:"thumbnail,omitempty"`
}

// PlantSpecies is a catalog list entry.
type PlantSpecies struct {
	ID             int              `json:"id"`
	CommonName     string           `json:"common_name"`
	ScientificName []string         `json:"scientific_name,omitempty"`
	OtherName      []string         `json:"other_name,omitempty"`
	Cycle          string           `json:"cycle,omitempty"`
	Watering       string           `json:"watering,omitempty"`
	Sunlight       FlexStrings      `json:"sunlight,omitempty"`
	DefaultImage   *ImageDescriptor `json:"default_image,omitempty"`
}

// Hardiness is the catalog's USDA zone range.
type Hardiness struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// PlantSpeciesDetails is a full catalog entry.
type PlantSpeciesDetails struct {
	ID               int              `json:"id"`
	CommonName       string           `json:"common_name"`
	ScientificName   []string         `json:"scientific_name,omitempty"`
	OtherName        []string         `json:"other_name,omitempty"`
	Family           string           `json:"family,omitempty"`
	Origin           []string         `json:"origin,omitempty"`
	Type             string           `json:"type,omitempty"`
	Dimension        string           `json:"dimension,omitempty"`
	Cycle            string           `json:"cycle,omitempty"`
	Watering         string           `json:"watering,omitempty"`
	Sunlight         FlexStrings      `json:"sunlight,omitempty"`
	Hardiness        *Hardiness       `json:"hardiness,omitempty"`
	CareLevel        string           `json:"care_level,omitempty"`
	GrowthRate       string           `json:"growth_rate,omitempty"`
	Maintenance      string           `json:"maintenance,omitempty"`
	DroughtTolerant  FlexBool         `json:"drought_tolerant"`
	Indoor           FlexBool         `json:"indoor"`
	EdibleFruit      FlexBool         `json:"edible_fruit"`
	EdibleLeaf       FlexBool         `json:"edible_leaf"`
	PoisonousToHuman FlexBool         `json:"poisonous_to_humans"`
	PoisonousToPets  FlexBool         `json:"poisonous_to_pets"`
	Medicinal        FlexBool         `json:"medicinal"`
	Description      string           `json:"description,omitempty"`
	DefaultImage     *ImageDescriptor `json:"default_image,omitempty"`
}

// Edible reports whether any part of the plant is edible.
func (d PlantSpeciesDetails) Edible() bool { return bool(d.EdibleFruit) || bool(d.EdibleLeaf) }

// Poisonous reports whether the plant is poisonous to humans or pets.
func (d PlantSpeciesDetails) Poisonous() bool {
	return bool(d.PoisonousToHuman) || bool(d.PoisonousToPets)
}
