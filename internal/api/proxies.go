package api

import (
	"context"
	"encoding/json"

	apierrors "github.com/leafkeeper/leafkeeper-client/internal/errors"
	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

const proxyPath = "/proxy/v1/proxy"

// CreateProxy adds a proxy contact.
func CreateProxy(ctx context.Context, r *Requester, req types.CreateProxyRequest) (*types.ProxyContact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Post(ctx, proxyPath+"/create", req, &raw); err != nil {
		return nil, err
	}
	return decodeProxy(raw)
}

// GetProxy fetches one proxy contact. A "not found" response yields
// (nil, nil).
func GetProxy(ctx context.Context, r *Requester, id string) (*types.ProxyContact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := requireID(id, "proxyId"); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Get(ctx, proxyPath+"/"+pathID(id), &raw); err != nil {
		if apierrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return decodeProxy(raw)
}

// ListProxies fetches every proxy contact. A "not found" response is an
// empty list.
func ListProxies(ctx context.Context, r *Requester) ([]types.ProxyContact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Get(ctx, "/proxy/v1/proxys", &raw); err != nil {
		if apierrors.IsNotFound(err) {
			return []types.ProxyContact{}, nil
		}
		return nil, err
	}
	return decodeProxies(raw)
}

// SearchProxies filters proxy contacts. A "not found" response is an empty
// list.
func SearchProxies(ctx context.Context, r *Requester, q types.ProxySearchQuery) ([]types.ProxyContact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values := ParamsValues(types.Params{
		"name":         q.Name,
		"phone_number": q.PhoneNumber,
	})
	var raw json.RawMessage
	if err := r.Get(ctx, proxyPath+"/search"+Query(values), &raw); err != nil {
		if apierrors.IsNotFound(err) {
			return []types.ProxyContact{}, nil
		}
		return nil, err
	}
	return decodeProxies(raw)
}

// UpdateProxy sends only the non-nil fields of req.
func UpdateProxy(ctx context.Context, r *Requester, id string, req types.UpdateProxyRequest) (*types.ProxyContact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := requireID(id, "proxyId"); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.Put(ctx, proxyPath+"/"+pathID(id), req, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return decodeProxy(raw)
}

// DeleteProxy removes a proxy contact.
func DeleteProxy(ctx context.Context, r *Requester, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := requireID(id, "proxyId"); err != nil {
		return err
	}
	return r.Delete(ctx, proxyPath+"/"+pathID(id), nil)
}

func decodeProxy(raw []byte) (*types.ProxyContact, error) {
	w, err := types.DecodeObject[types.ProxyWire](raw, "proxy")
	if err != nil {
		return nil, invalid("proxy", err)
	}
	p := types.ProxyFromWire(w)
	return &p, nil
}

func decodeProxies(raw []byte) ([]types.ProxyContact, error) {
	wires, err := types.DecodeList[types.ProxyWire](raw, "proxys", "proxies")
	if err != nil {
		return nil, invalid("proxies", err)
	}
	out := make([]types.ProxyContact, 0, len(wires))
	for _, w := range wires {
		out = append(out, types.ProxyFromWire(w))
	}
	return out, nil
}
