package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

func TestCreateReminder_FullPayloadWithDefaults(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost || req.URL.Path != "/reminder/reminder/v1/reminder/create" {
			t.Fatalf("unexpected %s %s", req.Method, req.URL.Path)
		}
		var got map[string]any
		_ = json.NewDecoder(req.Body).Decode(&got)
		for _, k := range []string{"name", "notes", "dueAt", "dueDay", "isActive", "isProxy", "proxy"} {
			if _, ok := got[k]; !ok {
				t.Fatalf("missing key %q in %v", k, got)
			}
		}
		if got["notes"] != nil || got["proxy"] != nil {
			t.Fatalf("expected null notes/proxy, got %v", got)
		}
		if got["isActive"] != true || got["isProxy"] != false {
			t.Fatalf("unexpected flags: %v", got)
		}
		if days, ok := got["dueDay"].([]any); !ok || len(days) != 0 {
			t.Fatalf("expected empty dueDay array, got %#v", got["dueDay"])
		}
		if got["dueAt"] != "2025-03-01 07:30:00+00" {
			t.Fatalf("unexpected dueAt: %v", got["dueAt"])
		}
		respond(w, http.StatusCreated, `{"reminder":{"id":9,"name":"Water ferns","due_at":"2025-03-01 07:30:00+00","is_active":true}}`)
	})

	rem, err := CreateReminder(context.Background(), r, types.CreateReminderRequest{
		Name:  "Water ferns",
		DueAt: "2025-03-01T15:30:00+08:00",
	})
	if err != nil {
		t.Fatalf("CreateReminder error: %v", err)
	}
	if rem.ID != "9" || rem.DueAt == nil || *rem.DueAt != "2025-03-01 07:30:00+00" {
		t.Fatalf("unexpected reminder: %+v", rem)
	}
	if rem.IsActive == nil || !*rem.IsActive {
		t.Fatal("expected snake_case is_active fallback")
	}
}

func TestNewReminderPayload(t *testing.T) {
	t.Parallel()
	yes := true
	phone := "91234567"
	p := NewReminderPayload(types.CreateReminderRequest{
		Name:    "Mist orchids",
		DueAt:   "someday",
		DueDay:  []int{5, 1, 9, 1},
		IsProxy: &yes,
		Proxy:   &phone,
	})
	if p.DueAt != nil {
		t.Fatalf("unparsable due date should be nil, got %q", *p.DueAt)
	}
	if len(p.DueDay) != 2 || p.DueDay[0] != 1 || p.DueDay[1] != 5 {
		t.Fatalf("unexpected dueDay: %v", p.DueDay)
	}
	if !p.IsActive || !p.IsProxy {
		t.Fatalf("unexpected flags: %+v", p)
	}
	if p.Proxy == nil || *p.Proxy != "+65 91234567" {
		t.Fatalf("unexpected proxy: %v", p.Proxy)
	}
	if phone != "91234567" {
		t.Fatal("caller's phone must not be modified")
	}

	notProxy := NewReminderPayload(types.CreateReminderRequest{Name: "x", Proxy: &phone})
	if *notProxy.Proxy != "91234567" {
		t.Fatalf("phone should only be formatted for proxy reminders, got %q", *notProxy.Proxy)
	}
}

func TestReminderUpdateBody_OnlyDefinedKeys(t *testing.T) {
	t.Parallel()
	name := "Fertilise roses"
	yes := true
	phone := "+44 7700 900000"
	body := ReminderUpdateBody(types.UpdateReminderRequest{Name: &name, IsProxy: &yes, Proxy: &phone})
	if len(body) != 3 {
		t.Fatalf("expected 3 keys, got %v", body)
	}
	if body["proxy"] != "+44 7700 900000" {
		t.Fatalf("prefixed numbers pass through, got %v", body["proxy"])
	}

	local := "91234567"
	body = ReminderUpdateBody(types.UpdateReminderRequest{Proxy: &local})
	if body["proxy"] != "+65 91234567" {
		t.Fatalf("number-only update must be prefixed, got %v", body["proxy"])
	}
	if _, ok := body["isProxy"]; ok {
		t.Fatalf("isProxy was not set and must not be sent: %v", body)
	}
	no := false
	body = ReminderUpdateBody(types.UpdateReminderRequest{IsProxy: &no, Proxy: &local})
	if body["proxy"] != "91234567" {
		t.Fatalf("explicit isProxy=false sends the number as given, got %v", body["proxy"])
	}

	bad := "nope"
	body = ReminderUpdateBody(types.UpdateReminderRequest{DueAt: &bad})
	v, ok := body["dueAt"]
	if !ok {
		t.Fatal("dueAt key should be present")
	}
	if s, _ := v.(*string); s != nil {
		t.Fatalf("expected nil due date, got %q", *s)
	}
}

func TestReminders_GetListDueUpdateDelete(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		switch {
		case req.Method == http.MethodGet && req.URL.Path == "/reminder/reminder/v1/reminder":
			if req.URL.Query().Get("id") != "r1" {
				t.Fatalf("unexpected query: %q", req.URL.RawQuery)
			}
			respond(w, http.StatusOK, `{"id":"r1","name":"Water","dueDay":[1,3]}`)
		case req.Method == http.MethodGet && req.URL.Path == "/reminder/reminder/v1/reminders":
			respond(w, http.StatusOK, `{"reminders":[{"id":"r1","name":"Water"},{"id":"r2","name":"Mist"}]}`)
		case req.Method == http.MethodGet && req.URL.Path == "/reminder/reminder/v1/reminders/due":
			if req.URL.RawQuery != "windowSec=3600" {
				t.Fatalf("unexpected query: %q", req.URL.RawQuery)
			}
			respond(w, http.StatusOK, `[]`)
		case req.Method == http.MethodPut && req.URL.Path == "/reminder/reminder/v1/reminder":
			var got map[string]any
			_ = json.NewDecoder(req.Body).Decode(&got)
			if len(got) != 1 || got["isActive"] != false {
				t.Fatalf("unexpected update body: %v", got)
			}
			w.WriteHeader(http.StatusNoContent)
		case req.Method == http.MethodDelete && req.URL.Path == "/reminder/reminder/v1/reminder/r1":
			respond(w, http.StatusOK, `{}`)
		default:
			t.Fatalf("unexpected %s %s", req.Method, req.URL.Path)
		}
	})
	ctx := context.Background()

	rem, err := GetReminder(ctx, r, "r1")
	if err != nil || len(rem.DueDay) != 2 {
		t.Fatalf("GetReminder: %+v, %v", rem, err)
	}
	list, err := ListReminders(ctx, r)
	if err != nil || len(list) != 2 || list[1].Name != "Mist" {
		t.Fatalf("ListReminders: %+v, %v", list, err)
	}
	due, err := ListDueReminders(ctx, r, time.Hour)
	if err != nil || due == nil || len(due) != 0 {
		t.Fatalf("ListDueReminders: %#v, %v", due, err)
	}
	no := false
	updated, err := UpdateReminder(ctx, r, "r1", types.UpdateReminderRequest{IsActive: &no})
	if err != nil || updated != nil {
		t.Fatalf("UpdateReminder: %+v, %v", updated, err)
	}
	if err := DeleteReminder(ctx, r, "r1"); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}
}
