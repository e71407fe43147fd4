package api

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	apierrors "github.com/leafkeeper/leafkeeper-client/internal/errors"
	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

const (
	loginPath    = "/login/auth/login"
	registerPath = "/login/register"
	logoutPath   = "/login/auth/logout"
)

// Login exchanges credentials for a token and the normalized user.
func Login(ctx context.Context, r *Requester, req types.LoginRequest) (*types.AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var w types.AuthWire
	if err := r.Post(ctx, loginPath, req, &w); err != nil {
		return nil, err
	}
	return AuthFromWire(w)
}

// Register creates an account. An empty Role is sent as types.DefaultRole.
func Register(ctx context.Context, r *Requester, req types.RegisterRequest) (*types.AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = types.DefaultRole
	}
	var w types.AuthWire
	if err := r.Post(ctx, registerPath, req, &w); err != nil {
		return nil, err
	}
	return AuthFromWire(w)
}

// Logout tells the user service to end the session. Callers treat failures
// as non-fatal.
func Logout(ctx context.Context, r *Requester) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.Post(ctx, logoutPath, nil, nil)
}

// AuthFromWire validates a login/register response. When the user object is
// absent, id, email and role are read from the token's claims.
func AuthFromWire(w types.AuthWire) (*types.AuthResult, error) {
	if strings.TrimSpace(w.Token) == "" {
		return nil, apierrors.InvalidResponse("missing token")
	}
	uw := w.User
	if uw == nil {
		var err error
		if uw, err = userFromToken(w.Token); err != nil {
			return nil, err
		}
	}
	user, err := types.UserFromWire(*uw)
	if err != nil {
		return nil, err
	}
	return &types.AuthResult{Token: w.Token, User: user}, nil
}

// userFromToken decodes the JWT payload without verifying the signature;
// the gateway owns verification.
func userFromToken(token string) (*types.UserWire, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, apierrors.InvalidResponse("token payload: %v", err)
	}
	return &types.UserWire{
		ID:    types.FlexString(claimString(claims["id"])),
		Email: claimString(claims["email"]),
		Role:  claimString(claims["role"]),
	}, nil
}

func claimString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return ""
	}
}
