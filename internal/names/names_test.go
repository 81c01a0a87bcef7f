package names

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// memStore implements Store in memory.
type memStore struct {
	names map[int]string
	puts  int
}

func (m *memStore) GetPlayerName(id int) (string, bool, error) {
	name, ok := m.names[id]
	return name, ok, nil
}

func (m *memStore) PutPlayerName(id int, name string) error {
	m.puts++
	m.names[id] = name
	return nil
}

func TestResolveNameFromAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/people/543037" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"people":[{"id":543037,"fullName":"Gerrit Cole"}]}`)
	}))
	defer srv.Close()

	store := &memStore{names: make(map[int]string)}
	c := NewClient(srv.URL, store, 0)

	name, err := c.ResolveName(context.Background(), 543037)
	if err != nil {
		t.Fatalf("ResolveName: %v", err)
	}
	if name != "Gerrit Cole" {
		t.Errorf("name = %q", name)
	}
	if store.puts != 1 {
		t.Errorf("expected write-through cache put, got %d", store.puts)
	}
}

func TestResolveNameFromCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("cached id should not hit the API")
	}))
	defer srv.Close()

	store := &memStore{names: map[int]string{100: "Cached Name"}}
	c := NewClient(srv.URL, store, 0)

	name, err := c.ResolveName(context.Background(), 100)
	if err != nil || name != "Cached Name" {
		t.Errorf("got %q, %v", name, err)
	}
}

func TestResolveNameUnknownPlayer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"people":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	if _, err := c.ResolveName(context.Background(), 1); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("expected ErrUnknownPlayer, got %v", err)
	}
}

func TestResolveNameHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	if _, err := c.ResolveName(context.Background(), 1); err == nil {
		t.Error("expected error on HTTP 500")
	}
}
