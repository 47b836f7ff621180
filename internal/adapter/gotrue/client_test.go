package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/academly/academly/internal/port/identity"
)

func TestSignIn_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" {
			t.Errorf("path = %q, want /token", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok",
			"user":         map[string]string{"id": "principal-1"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "svc-key")
	id, err := c.SignIn(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if id != "principal-1" {
		t.Errorf("id = %q, want principal-1", id)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "svc-key")
	_, err := c.SignIn(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCreateUser_EmailExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error_code":"email_exists","msg":"A user with this email address has already been registered"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "svc-key")
	_, err := c.CreateUser(context.Background(), "a@b.com", "pw", "A B")
	if !errors.Is(err, identity.ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}

func TestCreateUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer svc-key" {
			t.Errorf("auth header = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "principal-9"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "svc-key")
	id, err := c.CreateUser(context.Background(), "new@b.com", "pw", "New Owner")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if id != "principal-9" {
		t.Errorf("id = %q, want principal-9", id)
	}
}
