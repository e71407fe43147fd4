package api

import (
	"context"
	"encoding/json"

	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

// GetUser fetches a user profile by ID.
func GetUser(ctx context.Context, r *Requester, userID string) (*types.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := requireID(userID, "userId"); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Get(ctx, "/user/users/"+pathID(userID), &raw); err != nil {
		return nil, err
	}
	w, err := types.DecodeObject[types.UserWire](raw, "user")
	if err != nil {
		return nil, invalid("user", err)
	}
	u, err := types.UserFromWire(w)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
