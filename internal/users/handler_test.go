package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupUsersRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	router := setupUsersRouter(t)

	resp := postJSON(t, router, "/api/v1/register", map[string]string{
		"email":    "dev@example.com",
		"password": "correct-horse",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ID == "" || out.Email != "dev@example.com" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestRegisterDuplicateReturns409(t *testing.T) {
	router := setupUsersRouter(t)
	payload := map[string]string{"email": "dev@example.com", "password": "correct-horse"}

	if resp := postJSON(t, router, "/api/v1/register", payload); resp.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", resp.Code)
	}
	resp := postJSON(t, router, "/api/v1/register", payload)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	router := setupUsersRouter(t)
	payload := map[string]string{"email": "dev@example.com", "password": "correct-horse"}

	if resp := postJSON(t, router, "/api/v1/register", payload); resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.Code)
	}

	resp := postJSON(t, router, "/api/v1/login", payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected a token")
	}
	if out.User.Email != "dev@example.com" {
		t.Fatalf("user email: got %q", out.User.Email)
	}
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	router := setupUsersRouter(t)

	if resp := postJSON(t, router, "/api/v1/register", map[string]string{
		"email":    "dev@example.com",
		"password": "correct-horse",
	}); resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.Code)
	}

	resp := postJSON(t, router, "/api/v1/login", map[string]string{
		"email":    "dev@example.com",
		"password": "wrong-password",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
