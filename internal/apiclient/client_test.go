package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(srv.URL, 2*time.Second, func() string { return "test-token" }, zerolog.Nop())
	return client, srv
}

func asAPIError(t *testing.T, err error) *APIError {
	t.Helper()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an *APIError", err)
	}
	return apiErr
}

func TestBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))

	if err := client.Get(context.Background(), "/users", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, func() string { return "" }, zerolog.Nop())
	if err := client.Get(context.Background(), "/health", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty when logged out", gotAuth)
	}
}

func TestUnauthorizedInterception(t *testing.T) {
	t.Run("NonExemptPathFiresHookOnce", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"token expired"}`))
		}))

		hookCalls := 0
		client.SetUnauthorizedHook(func() { hookCalls++ })

		err := client.Get(context.Background(), "/users", nil)
		apiErr := asAPIError(t, err)
		if apiErr.Code != ErrCodeUnauthorized {
			t.Errorf("code = %s, want %s", apiErr.Code, ErrCodeUnauthorized)
		}
		if hookCalls != 1 {
			t.Errorf("hook fired %d times, want exactly 1", hookCalls)
		}
		// Interception presents the logout message, not the server's.
		if apiErr.Message != GetMessage(ErrCodeUnauthorized) {
			t.Errorf("message = %q, want generic logout message", apiErr.Message)
		}
	})

	t.Run("LoginExempt", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		}))

		hookCalls := 0
		client.SetUnauthorizedHook(func() { hookCalls++ })

		err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "x"}, nil)
		apiErr := asAPIError(t, err)
		if hookCalls != 0 {
			t.Errorf("hook fired %d times for login 401, want 0", hookCalls)
		}
		if apiErr.Message != "Invalid credentials" {
			t.Errorf("message = %q, want server message preserved", apiErr.Message)
		}
	})

	t.Run("ProfileExempt", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		hookCalls := 0
		client.SetUnauthorizedHook(func() { hookCalls++ })

		client.Get(context.Background(), "/auth/profile", nil)
		if hookCalls != 0 {
			t.Errorf("hook fired %d times for profile 401, want 0", hookCalls)
		}
	})
}

func TestForbiddenAndServerErrorsNoHook(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		code   ErrCode
	}{
		{"Forbidden", http.StatusForbidden, ErrCodeForbidden},
		{"NotFound", http.StatusNotFound, ErrCodeNotFound},
		{"Conflict", http.StatusConflict, ErrCodeConflict},
		{"ServerError", http.StatusInternalServerError, ErrCodeServer},
		{"BadGateway", http.StatusBadGateway, ErrCodeServer},
	} {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			hookCalls := 0
			client.SetUnauthorizedHook(func() { hookCalls++ })

			err := client.Get(context.Background(), "/quizzes", nil)
			apiErr := asAPIError(t, err)
			if apiErr.Code != tc.code {
				t.Errorf("code = %s, want %s", apiErr.Code, tc.code)
			}
			if apiErr.Status != tc.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tc.status)
			}
			if hookCalls != 0 {
				t.Errorf("hook fired for status %d", tc.status)
			}
		})
	}
}

func TestValidationFailureFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Validation failed","errors":{"email":"must be a valid email"}}`))
	}))

	err := client.Post(context.Background(), "/users", map[string]string{}, nil)
	apiErr := asAPIError(t, err)
	if apiErr.Code != ErrCodeValidation {
		t.Errorf("code = %s, want %s", apiErr.Code, ErrCodeValidation)
	}
	if apiErr.Message != "Validation failed" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Fields["email"] != "must be a valid email" {
		t.Errorf("fields = %v, want email entry", apiErr.Fields)
	}
}

func TestMessageArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":["title is required","difficulty is invalid"]}`))
	}))

	err := client.Post(context.Background(), "/quizzes", map[string]string{}, nil)
	apiErr := asAPIError(t, err)
	want := "title is required; difficulty is invalid"
	if apiErr.Message != want {
		t.Errorf("message = %q, want %q", apiErr.Message, want)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on.

	client := New(srv.URL, time.Second, nil, zerolog.Nop())
	err := client.Get(context.Background(), "/users", nil)
	apiErr := asAPIError(t, err)
	if apiErr.Code != ErrCodeNetwork {
		t.Errorf("code = %s, want %s", apiErr.Code, ErrCodeNetwork)
	}
	if apiErr.Status != 0 {
		t.Errorf("status = %d, want 0 for no response", apiErr.Status)
	}
}

func TestTimeout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Get(ctx, "/users", nil)
	apiErr := asAPIError(t, err)
	if apiErr.Code != ErrCodeTimeout {
		t.Errorf("code = %s, want %s", apiErr.Code, ErrCodeTimeout)
	}
}

func TestDecodesBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","name":"Abebe"}`))
	}))

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := client.Get(context.Background(), "/users/u1", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.ID != "u1" || out.Name != "Abebe" {
		t.Errorf("decoded %+v", out)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	if got := ErrorMessage(errors.New("plumbing"), "Failed to fetch users"); got != "Failed to fetch users" {
		t.Errorf("fallback = %q", got)
	}
	apiErr := &APIError{Code: ErrCodeServer, Message: "backend says no"}
	if got := ErrorMessage(apiErr, "fallback"); got != "backend says no" {
		t.Errorf("server message = %q", got)
	}
}
