package pluralkit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Token: "pk-token", SystemRef: "exmpl"}, zerolog.Nop())
}

func TestListMembers(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/systems/exmpl/members" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "pk-token" {
			t.Errorf("auth header = %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "aaaaa", "name": "Clove", "display_name": "Clove 🌸", "pronouns": "she/her"},
			{"id": "bbbbb", "name": "Luna"},
		})
	}))

	members, err := c.ListMembers(context.Background())
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	if members[0].DisplayName != "Clove 🌸" || members[0].Pronouns != "she/her" {
		t.Errorf("member[0] = %+v", members[0])
	}
}

func TestGetFrontersEmptyOnNoContent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	fronters, err := c.GetFronters(context.Background())
	if err != nil {
		t.Fatalf("GetFronters: %v", err)
	}
	if len(fronters.Members) != 0 {
		t.Errorf("members = %+v, want empty", fronters.Members)
	}
}

func TestSetFrontPostsSwitch(t *testing.T) {
	var got struct {
		Members []string `json:"members"`
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/systems/exmpl/switches" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.SetFront(context.Background(), []string{"aaaaa"}); err != nil {
		t.Fatalf("SetFront: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0] != "aaaaa" {
		t.Errorf("posted members = %v", got.Members)
	}
}

func TestSetFrontEmptySwitchOutSendsEmptyArray(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.SetFront(context.Background(), nil); err != nil {
		t.Fatalf("SetFront: %v", err)
	}
	if string(raw["members"]) != "[]" {
		t.Errorf("members field = %s, want []", raw["members"])
	}
}

func TestListSwitchesFiltersBySince(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"timestamp": now.Add(-time.Hour).Format(time.RFC3339), "members": []string{"aaaaa"}},
			{"timestamp": now.Add(-48 * time.Hour).Format(time.RFC3339), "members": []string{"bbbbb"}},
		})
	}))

	switches, err := c.ListSwitches(context.Background(), now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ListSwitches: %v", err)
	}
	if len(switches) != 1 || switches[0].MemberIDs[0] != "aaaaa" {
		t.Errorf("switches = %+v, want just the recent one", switches)
	}
}

func TestNotFoundMapsToMemberNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":20001}`, http.StatusNotFound)
	}))

	_, err := c.ListMembers(context.Background())
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Errorf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := c.GetFronters(context.Background())
	if err == nil {
		t.Fatal("want error for upstream 502")
	}
}
