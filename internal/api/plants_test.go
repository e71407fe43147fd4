package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

func TestCreateUserPlant_Multipart(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost || req.URL.Path != "/user-plant/v1/userPlant/create" {
			t.Fatalf("unexpected %s %s", req.Method, req.URL.Path)
		}
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if req.FormValue("plantName") != "Basil" || req.FormValue("location") != "Kitchen" {
			t.Fatalf("unexpected fields: %v", req.MultipartForm.Value)
		}
		if _, ok := req.MultipartForm.Value["notes"]; ok {
			t.Fatal("empty notes should not be sent")
		}
		f, _, err := req.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		b, _ := io.ReadAll(f)
		if string(b) != "img" {
			t.Fatalf("unexpected file body: %q", b)
		}
		respond(w, http.StatusCreated, `{"userPlant":{"id":"p1","plant_name":"Basil","s3Id":"k/1.jpg","user_id":"u1"}}`)
	})

	p, err := CreateUserPlant(context.Background(), r, types.CreateUserPlantRequest{
		Name:     "Basil",
		Location: "Kitchen",
		Image:    &types.File{Name: "basil.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("img")},
	})
	if err != nil {
		t.Fatalf("CreateUserPlant error: %v", err)
	}
	if p.ID != "p1" || p.Name != "Basil" || p.ImageURL != "k/1.jpg" || p.UserID != "u1" {
		t.Fatalf("unexpected plant: %+v", p)
	}
}

func TestUserPlant_GetListSearch(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/user-plant/v1/userPlant":
			if req.URL.Query().Get("id") != "p1" {
				t.Fatalf("unexpected id: %q", req.URL.RawQuery)
			}
			respond(w, http.StatusOK, `{"id":"p1","name":"Sage"}`)
		case "/user-plant/v1/userPlants":
			respond(w, http.StatusOK, `[{"id":"p1","plantName":"Sage"},{"id":"p2"}]`)
		case "/user-plant/search":
			if req.URL.RawQuery != "query=sa&species=Salvia" {
				t.Fatalf("unexpected query: %q", req.URL.RawQuery)
			}
			respond(w, http.StatusOK, `{"data":[{"id":"p1","plantName":"Sage"}]}`)
		default:
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
	})
	ctx := context.Background()

	p, err := GetUserPlant(ctx, r, "p1")
	if err != nil || p.Name != "Sage" {
		t.Fatalf("GetUserPlant: %+v, %v", p, err)
	}
	list, err := ListUserPlants(ctx, r)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListUserPlants: %+v, %v", list, err)
	}
	if list[1].Name != types.DefaultPlantName {
		t.Fatalf("expected default name, got %q", list[1].Name)
	}
	found, err := SearchUserPlants(ctx, r, types.UserPlantSearchQuery{Query: "sa", Species: "Salvia"})
	if err != nil || len(found) != 1 {
		t.Fatalf("SearchUserPlants: %+v, %v", found, err)
	}
}

func TestUpdateUserPlant_PartialBody(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPut || req.URL.RawQuery != "id=p1" {
			t.Fatalf("unexpected %s %s", req.Method, req.URL.String())
		}
		var got map[string]any
		_ = json.NewDecoder(req.Body).Decode(&got)
		if len(got) != 1 || got["notes"] != "" {
			t.Fatalf("expected only notes, got %v", got)
		}
		respond(w, http.StatusOK, `{"id":"p1","plantName":"Sage","notes":""}`)
	})
	empty := ""
	p, err := UpdateUserPlant(context.Background(), r, "p1", types.UpdateUserPlantRequest{Notes: &empty})
	if err != nil || p == nil || p.ID != "p1" {
		t.Fatalf("UpdateUserPlant: %+v, %v", p, err)
	}
}

func TestDeleteUserPlant(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodDelete || req.URL.Path != "/user-plant/v1/userPlant" || req.URL.RawQuery != "id=p1" {
			t.Fatalf("unexpected %s %s", req.Method, req.URL.String())
		}
		respond(w, http.StatusOK, `{"message":"deleted"}`)
	})
	if err := DeleteUserPlant(context.Background(), r, "p1"); err != nil {
		t.Fatalf("DeleteUserPlant: %v", err)
	}
}
