package devmode

import (
	"encoding/json"
	"io"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxUploadBytes bounds multipart bodies held in memory.
const maxUploadBytes = 10 << 20

type plantRecord struct {
	seq       int
	ID        string
	UserID    string
	Name      string
	Species   string
	Location  string
	Notes     string
	S3ID      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// plantJSON is the user-plant service's snake_case shape.
type plantJSON struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	PlantName string `json:"plant_name"`
	Species   string `json:"species,omitempty"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
	S3ID      string `json:"s3_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (p *plantRecord) json() plantJSON {
	return plantJSON{
		ID:        p.ID,
		UserID:    p.UserID,
		PlantName: p.Name,
		Species:   p.Species,
		Location:  p.Location,
		Notes:     p.Notes,
		S3ID:      p.S3ID,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (g *Gateway) createPlant(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Expected multipart form data")
		return
	}
	name := strings.TrimSpace(r.FormValue("plantName"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "plantName is required")
		return
	}

	now := g.now()
	p := &plantRecord{
		ID:        uuid.NewString(),
		UserID:    claims.UserID,
		Name:      name,
		Species:   r.FormValue("species"),
		Location:  r.FormValue("location"),
		Notes:     r.FormValue("notes"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if f, hdr, err := r.FormFile("file"); err == nil {
		_, _ = io.Copy(io.Discard, f)
		_ = f.Close()
		p.S3ID = path.Join("user-plants", claims.UserID, p.ID, path.Base(hdr.Filename))
	}

	g.mu.Lock()
	p.seq = g.nextSeq()
	g.plants[p.ID] = p
	out := p.json()
	g.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"userPlant": out})
}

// ownedPlant looks up a plant by ?id= for the caller; callers hold g.mu.
func (g *Gateway) ownedPlant(r *http.Request) *plantRecord {
	p := g.plants[r.URL.Query().Get("id")]
	if p == nil || p.UserID != claimsFrom(r.Context()).UserID {
		return nil
	}
	return p
}

func (g *Gateway) getPlant(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	p := g.ownedPlant(r)
	var out plantJSON
	if p != nil {
		out = p.json()
	}
	g.mu.Unlock()
	if p == nil {
		notFound(w, "Plant")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) updatePlant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlantName *string `json:"plantName"`
		Species   *string `json:"species"`
		Location  *string `json:"location"`
		Notes     *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	g.mu.Lock()
	p := g.ownedPlant(r)
	if p == nil {
		g.mu.Unlock()
		notFound(w, "Plant")
		return
	}
	if req.PlantName != nil {
		p.Name = *req.PlantName
	}
	if req.Species != nil {
		p.Species = *req.Species
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	p.UpdatedAt = g.now()
	out := p.json()
	g.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) deletePlant(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	p := g.ownedPlant(r)
	if p != nil {
		delete(g.plants, p.ID)
	}
	g.mu.Unlock()
	if p == nil {
		notFound(w, "Plant")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Plant deleted"})
}

func (g *Gateway) listPlants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"userPlants": g.plantsWhere(r, func(*plantRecord) bool { return true })})
}

func (g *Gateway) searchPlants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := strings.ToLower(q.Get("query"))
	species := strings.ToLower(q.Get("species"))
	location := strings.ToLower(q.Get("location"))
	out := g.plantsWhere(r, func(p *plantRecord) bool {
		if term != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Notes), term) {
			return false
		}
		if species != "" && !strings.Contains(strings.ToLower(p.Species), species) {
			return false
		}
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			return false
		}
		return true
	})
	writeJSON(w, http.StatusOK, out)
}

// plantsWhere returns the caller's plants matching keep, oldest first.
func (g *Gateway) plantsWhere(r *http.Request, keep func(*plantRecord) bool) []plantJSON {
	userID := claimsFrom(r.Context()).UserID
	g.mu.Lock()
	recs := make([]*plantRecord, 0)
	for _, p := range g.plants {
		if p.UserID == userID && keep(p) {
			recs = append(recs, p)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]plantJSON, 0, len(recs))
	for _, p := range recs {
		out = append(out, p.json())
	}
	g.mu.Unlock()
	return out
}
