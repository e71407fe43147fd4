package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

// SpeciesValues renders a catalog query. Unset fields are omitted.
func SpeciesValues(q types.SpeciesListQuery) url.Values {
	return ParamsValues(types.Params{
		"page":      q.Page,
		"q":         q.Query,
		"order":     q.Order,
		"edible":    q.Edible,
		"poisonous": q.Poisonous,
		"cycle":     q.Cycle,
		"watering":  q.Watering,
		"sunlight":  q.Sunlight,
		"indoor":    q.Indoor,
		"hardiness": q.Hardiness,
	})
}

// ListPlantSpecies fetches one page of the plant catalog.
func ListPlantSpecies(ctx context.Context, r *Requester, q types.SpeciesListQuery) (*types.SpeciesPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Get(ctx, "/plants/v2/species-list"+Query(SpeciesValues(q)), &raw); err != nil {
		return nil, err
	}
	var page types.SpeciesPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, invalid("species list", err)
	}
	if page.Data == nil {
		page.Data = []types.PlantSpecies{}
	}
	return &page, nil
}

// GetPlantSpeciesDetails fetches one catalog entry. params is passed through
// as the query string.
func GetPlantSpeciesDetails(ctx context.Context, r *Requester, id int, params types.Params) (*types.PlantSpeciesDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	endpoint := "/plants/v2/species/details/" + strconv.Itoa(id) + Query(ParamsValues(params))
	if err := r.Get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	d, err := types.DecodeObject[types.PlantSpeciesDetails](raw)
	if err != nil {
		return nil, invalid("species details", err)
	}
	return &d, nil
}
