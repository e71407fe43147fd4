package types

import (
	"strings"

	apierrors "github.com/leafkeeper/leafkeeper-client/internal/errors"
)

// ------------------------------
// Wire shapes
// ------------------------------
//
// Backend JSON is loosely named (camelCase, snake_case, Mongo "_id"). Each
// wire struct captures every known spelling; the XFromWire functions below
// resolve them in a fixed priority order and nothing else.

// DefaultPlantName is used when a plant carries no name under any key.
const DefaultPlantName = "Unnamed plant"

// UserWire is the backend's user object.
type UserWire struct {
	ID               FlexString `json:"id"`
	MongoID          FlexString `json:"_id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Username         string     `json:"username"`
	PhoneNumber      string     `json:"phoneNumber"`
	PhoneNumberSnake string     `json:"phone_number"`
	Role             string     `json:"role"`
	CreatedAt        string     `json:"createdAt"`
	CreatedAtSnake   string     `json:"created_at"`
}

// AuthWire is the login/register response.
type AuthWire struct {
	Token string    `json:"token"`
	User  *UserWire `json:"user"`
}

// UserPlantWire is the backend's user-plant object.
type UserPlantWire struct {
	ID             FlexString `json:"id"`
	UserID         FlexString `json:"userId"`
	UserIDSnake    FlexString `json:"user_id"`
	PlantName      *string    `json:"plantName"`
	PlantNameSnake *string    `json:"plant_name"`
	Name           *string    `json:"name"`
	Species        string     `json:"species"`
	Location       string     `json:"location"`
	Notes          string     `json:"notes"`
	ImageURLSnake  *string    `json:"image_url"`
	ImageURL       *string    `json:"imageUrl"`
	S3IDSnake      *string    `json:"s3_id"`
	S3ID           *string    `json:"s3Id"`
	CreatedAt      string     `json:"createdAt"`
	CreatedAtSnake string     `json:"created_at"`
	UpdatedAt      string     `json:"updatedAt"`
	UpdatedAtSnake string     `json:"updated_at"`
}

// ReminderWire is the backend's reminder object.
type ReminderWire struct {
	ID            FlexString `json:"id"`
	Name          string     `json:"name"`
	Notes         *string    `json:"notes"`
	DueAt         *string    `json:"dueAt"`
	DueAtSnake    *string    `json:"due_at"`
	DueDay        []int      `json:"dueDay"`
	DueDaySnake   []int      `json:"due_day"`
	IsActive      *bool      `json:"isActive"`
	IsActiveSnake *bool      `json:"is_active"`
	IsProxy       *bool      `json:"isProxy"`
	IsProxySnake  *bool      `json:"is_proxy"`
	Proxy         *string    `json:"proxy"`
}

// ProxyWire is the backend's proxy contact object.
type ProxyWire struct {
	ID          FlexString `json:"id"`
	Name        string     `json:"name"`
	PhoneNumber string     `json:"phone_number"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
}

// ------------------------------
// Mapping
// ------------------------------

// UserFromWire resolves id ← id ?? _id, phoneNumber ← phoneNumber ??
// phone_number, createdAt ← createdAt ?? created_at and name ← name ??
// username ?? email. A missing id or email is an invalid response.
func UserFromWire(w UserWire) (User, error) {
	id := firstNonEmpty(string(w.ID), string(w.MongoID))
	if id == "" {
		return User{}, apierrors.InvalidResponse("user is missing id")
	}
	if strings.TrimSpace(w.Email) == "" {
		return User{}, apierrors.InvalidResponse("user is missing email")
	}
	return User{
		ID:          id,
		Email:       w.Email,
		Name:        firstNonEmpty(w.Name, w.Username, w.Email),
		Username:    w.Username,
		PhoneNumber: firstNonEmpty(w.PhoneNumber, w.PhoneNumberSnake),
		Role:        w.Role,
		CreatedAt:   firstNonEmpty(w.CreatedAt, w.CreatedAtSnake),
	}, nil
}

// UserPlantFromWire resolves name ← plantName ?? plant_name ?? name ??
// DefaultPlantName and imageUrl ← image_url ?? imageUrl ?? s3_id ?? s3Id.
// A key counts as present when it is not null, even if empty.
func UserPlantFromWire(w UserPlantWire) UserPlant {
	name, ok := firstPresent(w.PlantName, w.PlantNameSnake, w.Name)
	if !ok {
		name = DefaultPlantName
	}
	image, _ := firstPresent(w.ImageURLSnake, w.ImageURL, w.S3IDSnake, w.S3ID)
	return UserPlant{
		ID:        string(w.ID),
		UserID:    firstNonEmpty(string(w.UserID), string(w.UserIDSnake)),
		Name:      name,
		Species:   w.Species,
		Location:  w.Location,
		Notes:     w.Notes,
		ImageURL:  image,
		CreatedAt: firstNonEmpty(w.CreatedAt, w.CreatedAtSnake),
		UpdatedAt: firstNonEmpty(w.UpdatedAt, w.UpdatedAtSnake),
	}
}

// ReminderFromWire prefers camelCase keys and falls back to snake_case.
func ReminderFromWire(w ReminderWire) Reminder {
	r := Reminder{
		ID:       string(w.ID),
		Name:     w.Name,
		Notes:    w.Notes,
		DueAt:    w.DueAt,
		DueDay:   w.DueDay,
		IsActive: w.IsActive,
		IsProxy:  w.IsProxy,
		Proxy:    w.Proxy,
	}
	if r.DueAt == nil {
		r.DueAt = w.DueAtSnake
	}
	if r.DueDay == nil {
		r.DueDay = w.DueDaySnake
	}
	if r.IsActive == nil {
		r.IsActive = w.IsActiveSnake
	}
	if r.IsProxy == nil {
		r.IsProxy = w.IsProxySnake
	}
	return r
}

// ProxyFromWire renames phone_number to phoneNumber; there is no other
// fallback.
func ProxyFromWire(w ProxyWire) ProxyContact {
	return ProxyContact{
		ID:          string(w.ID),
		Name:        w.Name,
		PhoneNumber: w.PhoneNumber,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPresent(vals ...*string) (string, bool) {
	for _, v := range vals {
		if v != nil {
			return *v, true
		}
	}
	return "", false
}
