package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

type sessionResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// Register -> read profile -> partial update -> password change, end to end.
func TestProfileFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/users",
		map[string]any{"name": "Ann", "email": "ann@x.com", "password": "S3cret-pw!"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	var reg sessionResponse
	decodeJSON(t, resp, &reg)

	// Profile via the registration token
	resp, err = app.Test(jsonReq("GET", "/api/users/profile", nil, reg.Token))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, `"name":"Ann"`) || !strings.Contains(s, `"email":"ann@x.com"`) || !strings.Contains(s, `"isAdmin":false`) {
		t.Fatalf("unexpected profile body: %s", s)
	}
	if strings.Contains(s, "$2") || strings.Contains(s, "password") {
		t.Fatalf("profile leaks password material: %s", s)
	}

	// Name-only update: email stays, fresh token comes back
	resp, err = app.Test(jsonReq("PUT", "/api/users/profile", map[string]any{"name": "Annie"}, reg.Token))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	var upd sessionResponse
	decodeJSON(t, resp, &upd)
	if upd.Name != "Annie" || upd.Email != "ann@x.com" {
		t.Fatalf("partial update went wrong: %+v", upd)
	}
	if upd.Token == "" {
		t.Fatal("self-update must return a fresh token")
	}

	// The fresh token works
	resp, err = app.Test(jsonReq("GET", "/api/users/profile", nil, upd.Token))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile with fresh token: expected 200, got %d", resp.StatusCode)
	}

	// Password change: old credentials stop working, new ones log in
	resp, err = app.Test(jsonReq("PUT", "/api/users/profile", map[string]any{"password": "An0ther-pw!"}, upd.Token))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("password update: expected 200, got %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("POST", "/api/users/login",
		map[string]any{"email": "ann@x.com", "password": "S3cret-pw!"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("old password: expected 401, got %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("POST", "/api/users/login",
		map[string]any{"email": "ann@x.com", "password": "An0ther-pw!"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("new password: expected 200, got %d", resp.StatusCode)
	}
}

// A valid token whose account was deleted mid-session stops working.
func TestProfileAfterAccountDeleted(t *testing.T) {
	app, _, tokens := newTestApp(t)

	bobTok, err := tokens.Issue("u-bob")
	if err != nil {
		t.Fatal(err)
	}
	adminTok, err := tokens.Issue("u-admin")
	if err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("GET", "/api/users/profile", nil, bobTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile before delete: expected 200, got %d", resp.StatusCode)
	}

	if _, err := app.Test(jsonReq("DELETE", "/api/users/u-bob", nil, adminTok)); err != nil {
		t.Fatal(err)
	}

	resp, err = app.Test(jsonReq("GET", "/api/users/profile", nil, bobTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("profile after delete: expected 401, got %d", resp.StatusCode)
	}
}

// Conflicting email on self-update is rejected and nothing changes.
func TestProfileUpdateDuplicateEmail(t *testing.T) {
	app, _, tokens := newTestApp(t)

	aliceTok, err := tokens.Issue("u-alice")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := app.Test(jsonReq("PUT", "/api/users/profile", map[string]any{"email": "bob@shopline.test"}, aliceTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("GET", "/api/users/profile", nil, aliceTok))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "alice@shopline.test") {
		t.Fatalf("email changed despite conflict: %s", body)
	}
}
