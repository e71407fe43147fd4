package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

const userPlantPath = "/user-plant/v1/userPlant"

// CreateUserPlant uploads a new plant as multipart form data. Empty text
// fields are left out; the optional image goes in the "file" part.
func CreateUserPlant(ctx context.Context, r *Requester, req types.CreateUserPlantRequest) (*types.UserPlant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	form := Form{FileField: "file", File: req.Image}
	for _, f := range []FormField{
		{Name: "plantName", Value: req.Name},
		{Name: "species", Value: req.Species},
		{Name: "location", Value: req.Location},
		{Name: "notes", Value: req.Notes},
	} {
		if f.Value != "" {
			form.Fields = append(form.Fields, f)
		}
	}
	var raw json.RawMessage
	if err := r.Upload(ctx, userPlantPath+"/create", form, &raw); err != nil {
		return nil, err
	}
	return decodeUserPlant(raw)
}

// GetUserPlant fetches one of the user's plants.
func GetUserPlant(ctx context.Context, r *Requester, id string) (*types.UserPlant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := requireID(id, "plantId"); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Get(ctx, userPlantPath+idQuery(id), &raw); err != nil {
		return nil, err
	}
	return decodeUserPlant(raw)
}

// ListUserPlants fetches every plant the signed-in user owns.
func ListUserPlants(ctx context.Context, r *Requester) ([]types.UserPlant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Get(ctx, "/user-plant/v1/userPlants", &raw); err != nil {
		return nil, err
	}
	return decodeUserPlants(raw)
}

// SearchUserPlants filters the user's plants.
func SearchUserPlants(ctx context.Context, r *Requester, q types.UserPlantSearchQuery) ([]types.UserPlant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values := ParamsValues(types.Params{
		"query":    q.Query,
		"species":  q.Species,
		"location": q.Location,
	})
	var raw json.RawMessage
	if err := r.Get(ctx, "/user-plant/search"+Query(values), &raw); err != nil {
		return nil, err
	}
	return decodeUserPlants(raw)
}

// UpdateUserPlant sends only the non-nil fields of req. A nil plant is
// returned when the service acknowledges without a body.
func UpdateUserPlant(ctx context.Context, r *Requester, id string, req types.UpdateUserPlantRequest) (*types.UserPlant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := requireID(id, "plantId"); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Put(ctx, userPlantPath+idQuery(id), req, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return decodeUserPlant(raw)
}

// DeleteUserPlant removes a plant.
func DeleteUserPlant(ctx context.Context, r *Requester, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := requireID(id, "plantId"); err != nil {
		return err
	}
	return r.Delete(ctx, userPlantPath+idQuery(id), nil)
}

func idQuery(id string) string {
	return Query(url.Values{"id": {id}})
}

func decodeUserPlant(raw []byte) (*types.UserPlant, error) {
	w, err := types.DecodeObject[types.UserPlantWire](raw, "userPlant", "plant")
	if err != nil {
		return nil, invalid("user plant", err)
	}
	p := types.UserPlantFromWire(w)
	return &p, nil
}

func decodeUserPlants(raw []byte) ([]types.UserPlant, error) {
	wires, err := types.DecodeList[types.UserPlantWire](raw, "userPlants", "plants")
	if err != nil {
		return nil, invalid("user plants", err)
	}
	out := make([]types.UserPlant, 0, len(wires))
	for _, w := range wires {
		out = append(out, types.UserPlantFromWire(w))
	}
	return out, nil
}
