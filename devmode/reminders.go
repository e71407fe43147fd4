package devmode

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/leafkeeper/leafkeeper-client/internal/schedule"
)

// reminderKeys must all be present on create.
var reminderKeys = []string{"name", "notes", "dueAt", "dueDay", "isActive", "isProxy", "proxy"}

// reminderJSON is the reminder service's camelCase shape.
type reminderJSON struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	Name     string  `json:"name"`
	Notes    *string `json:"notes"`
	DueAt    *string `json:"dueAt"`
	DueDay   []int   `json:"dueDay"`
	IsActive bool    `json:"isActive"`
	IsProxy  bool    `json:"isProxy"`
	Proxy    *string `json:"proxy"`
}

type reminderRecord struct {
	seq int
	reminderJSON
}

func (g *Gateway) createReminder(w http.ResponseWriter, r *http.Request) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	for _, k := range reminderKeys {
		if _, ok := fields[k]; !ok {
			writeError(w, http.StatusBadRequest, "Missing field "+k)
			return
		}
	}
	rec := &reminderRecord{reminderJSON: reminderJSON{
		ID:     uuid.NewString(),
		UserID: claimsFrom(r.Context()).UserID,
	}}
	if msg := applyReminderFields(&rec.reminderJSON, fields); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if rec.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	g.mu.Lock()
	rec.seq = g.nextSeq()
	g.reminders[rec.ID] = rec
	out := rec.reminderJSON
	g.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"reminder": out})
}

// applyReminderFields copies present keys onto rem and returns a message
// describing the first invalid one.
func applyReminderFields(rem *reminderJSON, fields map[string]json.RawMessage) string {
	targets := map[string]any{
		"name":     &rem.Name,
		"notes":    &rem.Notes,
		"dueAt":    &rem.DueAt,
		"dueDay":   &rem.DueDay,
		"isActive": &rem.IsActive,
		"isProxy":  &rem.IsProxy,
		"proxy":    &rem.Proxy,
	}
	for _, k := range reminderKeys {
		raw, ok := fields[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, targets[k]); err != nil {
			return "Invalid " + k
		}
	}
	if rem.DueAt != nil {
		if _, err := schedule.ParseDueAt(*rem.DueAt); err != nil {
			return "Invalid dueAt, expected YYYY-MM-DD HH:mm:ss+00"
		}
	}
	for _, d := range rem.DueDay {
		if d < 0 || d > 6 {
			return "Invalid dueDay " + strconv.Itoa(d)
		}
	}
	if rem.DueDay == nil {
		rem.DueDay = []int{}
	}
	return ""
}

// ownedReminder finds id for the caller; callers hold g.mu.
func (g *Gateway) ownedReminder(r *http.Request, id string) *reminderRecord {
	rec := g.reminders[id]
	if rec == nil || rec.UserID != claimsFrom(r.Context()).UserID {
		return nil
	}
	return rec
}

func (g *Gateway) getReminder(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	rec := g.ownedReminder(r, r.URL.Query().Get("id"))
	var out reminderJSON
	if rec != nil {
		out = rec.reminderJSON
	}
	g.mu.Unlock()
	if rec == nil {
		notFound(w, "Reminder")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) updateReminder(w http.ResponseWriter, r *http.Request) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	g.mu.Lock()
	rec := g.ownedReminder(r, r.URL.Query().Get("id"))
	if rec == nil {
		g.mu.Unlock()
		notFound(w, "Reminder")
		return
	}
	updated := rec.reminderJSON
	updated.DueDay = append([]int(nil), rec.DueDay...)
	if msg := applyReminderFields(&updated, fields); msg != "" {
		g.mu.Unlock()
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	rec.reminderJSON = updated
	g.mu.Unlock()
	writeJSON(w, http.StatusOK, updated)
}

func (g *Gateway) deleteReminder(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	rec := g.ownedReminder(r, mux.Vars(r)["id"])
	if rec != nil {
		delete(g.reminders, rec.ID)
	}
	g.mu.Unlock()
	if rec == nil {
		notFound(w, "Reminder")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reminder deleted"})
}

func (g *Gateway) listReminders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, g.remindersWhere(r, func(*reminderJSON) bool { return true }))
}

// dueReminders lists active reminders whose next occurrence falls within
// windowSec seconds from now.
func (g *Gateway) dueReminders(w http.ResponseWriter, r *http.Request) {
	windowSec, err := strconv.Atoi(r.URL.Query().Get("windowSec"))
	if err != nil || windowSec < 0 {
		writeError(w, http.StatusBadRequest, "windowSec must be a non-negative integer")
		return
	}
	now := g.now().UTC()
	until := now.Add(time.Duration(windowSec) * time.Second)
	out := g.remindersWhere(r, func(rem *reminderJSON) bool {
		if !rem.IsActive || rem.DueAt == nil {
			return false
		}
		due, err := schedule.ParseDueAt(*rem.DueAt)
		if err != nil {
			return false
		}
		next := schedule.NextOccurrence(due, rem.DueDay, now)
		return !next.Before(now) && !next.After(until)
	})
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) remindersWhere(r *http.Request, keep func(*reminderJSON) bool) []reminderJSON {
	userID := claimsFrom(r.Context()).UserID
	g.mu.Lock()
	recs := make([]*reminderRecord, 0)
	for _, rec := range g.reminders {
		if rec.UserID == userID && keep(&rec.reminderJSON) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]reminderJSON, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.reminderJSON)
	}
	g.mu.Unlock()
	return out
}
