package api

import (
	"context"
	"encoding/json"

	"github.com/leafkeeper/leafkeeper-client/internal/diagnosis"
	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

// Diagnose uploads a photo to the diagnosis service. r must point at the
// diagnosis base URL, not the gateway.
func Diagnose(ctx context.Context, r *Requester, image types.File) (*diagnosis.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Upload(ctx, "/doctor/predict", Form{FileField: "file", File: &image}, &raw); err != nil {
		return nil, err
	}
	var p diagnosis.Prediction
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, invalid("prediction", err)
	}
	if p.PredictedClass == "" {
		return nil, invalid("prediction", errMissingClass)
	}
	res := diagnosis.Interpret(p)
	return &res, nil
}
