package devmode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL bounds the lifetime of issued tokens.
const tokenTTL = 24 * time.Hour

type account struct {
	ID           string
	Email        string
	Username     string
	PhoneNumber  string
	Role         string
	PasswordHash []byte
	CreatedAt    time.Time
}

// userJSON is the user service's shape: Mongo id and snake_case fields.
type userJSON struct {
	MongoID     string `json:"_id"`
	Email       string `json:"email"`
	Username    string `json:"username,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func (a *account) json() userJSON {
	return userJSON{
		MongoID:     a.ID,
		Email:       a.Email,
		Username:    a.Username,
		PhoneNumber: a.PhoneNumber,
		Role:        a.Role,
		CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Claims carries the identity clients fall back to when a login response
// has no user object.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for a user. Token times follow the wall clock,
// not WithClock, since validation does.
func (g *Gateway) IssueToken(userID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    "leafkeeper_devmode",
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.key)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}
	return tok, nil
}

// ValidateToken checks the signature, expiry and revocation of a token.
func (g *Gateway) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't handle this token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.revoked[claims.ID] {
		return nil, fmt.Errorf("token has been revoked")
	}
	if _, ok := g.accounts[claims.UserID]; !ok {
		return nil, fmt.Errorf("unknown user")
	}
	return claims, nil
}

type ctxKey struct{}

func claimsFrom(ctx context.Context) *Claims {
	c, _ := ctx.Value(ctxKey{}).(*Claims)
	return c
}

// authed rejects requests without a valid bearer token and stores the
// claims in the request context.
func (g *Gateway) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		claims, err := g.ValidateToken(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	}
}

func (g *Gateway) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	g.mu.Lock()
	acct := g.accounts[g.byEmail[strings.ToLower(req.Email)]]
	g.mu.Unlock()
	if acct == nil || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tok, err := g.IssueToken(acct.ID, acct.Email, acct.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// The login service only returns the token; identity lives in its claims.
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (g *Gateway) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		Username    string `json:"username"`
		PhoneNumber string `json:"phoneNumber"`
		Role        string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	acct := &account{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
		PasswordHash: hash,
		CreatedAt:    g.now(),
	}
	g.mu.Lock()
	if _, taken := g.byEmail[strings.ToLower(req.Email)]; taken {
		g.mu.Unlock()
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	g.accounts[acct.ID] = acct
	g.byEmail[strings.ToLower(req.Email)] = acct.ID
	g.mu.Unlock()

	tok, err := g.IssueToken(acct.ID, acct.Email, acct.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": tok, "user": acct.json()})
}

func (g *Gateway) logout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	g.mu.Lock()
	g.revoked[claims.ID] = true
	g.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (g *Gateway) getUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	g.mu.Lock()
	acct := g.accounts[id]
	g.mu.Unlock()
	if acct == nil {
		notFound(w, "User")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": acct.json()})
}
