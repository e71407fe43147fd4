package devmode

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// proxyJSON is the proxy service's shape: snake_case phone, camelCase dates.
type proxyJSON struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

type proxyRecord struct {
	seq int
	proxyJSON
}

type proxyFields struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

func (f proxyFields) apply(p *proxyJSON) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.PhoneNumber != nil {
		p.PhoneNumber = *f.PhoneNumber
	}
	if f.StartDate != nil {
		p.StartDate = *f.StartDate
	}
	if f.EndDate != nil {
		p.EndDate = *f.EndDate
	}
}

func (g *Gateway) createProxy(w http.ResponseWriter, r *http.Request) {
	var req proxyFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	rec := &proxyRecord{proxyJSON: proxyJSON{
		ID:     uuid.NewString(),
		UserID: claimsFrom(r.Context()).UserID,
	}}
	req.apply(&rec.proxyJSON)

	g.mu.Lock()
	rec.seq = g.nextSeq()
	g.proxies[rec.ID] = rec
	out := rec.proxyJSON
	g.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"proxy": out})
}

// ownedProxy finds the {id} route var for the caller; callers hold g.mu.
func (g *Gateway) ownedProxy(r *http.Request) *proxyRecord {
	rec := g.proxies[mux.Vars(r)["id"]]
	if rec == nil || rec.UserID != claimsFrom(r.Context()).UserID {
		return nil
	}
	return rec
}

func (g *Gateway) getProxy(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	rec := g.ownedProxy(r)
	var out proxyJSON
	if rec != nil {
		out = rec.proxyJSON
	}
	g.mu.Unlock()
	if rec == nil {
		notFound(w, "Proxy")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) updateProxy(w http.ResponseWriter, r *http.Request) {
	var req proxyFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	g.mu.Lock()
	rec := g.ownedProxy(r)
	if rec == nil {
		g.mu.Unlock()
		notFound(w, "Proxy")
		return
	}
	req.apply(&rec.proxyJSON)
	out := rec.proxyJSON
	g.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) deleteProxy(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	rec := g.ownedProxy(r)
	if rec != nil {
		delete(g.proxies, rec.ID)
	}
	g.mu.Unlock()
	if rec == nil {
		notFound(w, "Proxy")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Proxy deleted"})
}

// listProxies answers an empty result with the proxy service's 404
// "User notfound".
func (g *Gateway) listProxies(w http.ResponseWriter, r *http.Request) {
	out := g.proxiesWhere(r, func(*proxyJSON) bool { return true })
	if len(out) == 0 {
		notFound(w, "User")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) searchProxies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := strings.ToLower(q.Get("name"))
	phone := q.Get("phone_number")
	out := g.proxiesWhere(r, func(p *proxyJSON) bool {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			return false
		}
		return phone == "" || strings.Contains(p.PhoneNumber, phone)
	})
	if len(out) == 0 {
		notFound(w, "User")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"proxys": out})
}

func (g *Gateway) proxiesWhere(r *http.Request, keep func(*proxyJSON) bool) []proxyJSON {
	userID := claimsFrom(r.Context()).UserID
	g.mu.Lock()
	recs := make([]*proxyRecord, 0)
	for _, rec := range g.proxies {
		if rec.UserID == userID && keep(&rec.proxyJSON) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]proxyJSON, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.proxyJSON)
	}
	g.mu.Unlock()
	return out
}
