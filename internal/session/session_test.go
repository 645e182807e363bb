package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/maraki-learning/adminctl/internal/api"
	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/credstore"
	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/validator"
)

func TestMain(m *testing.M) {
	validator.Setup()
	os.Exit(m.Run())
}

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

var testProfile = model.UserProfile{ID: "u1", Name: "Tigist", Email: "tigist@example.com", Role: model.RoleAdmin}

type testEnv struct {
	sess      *Session
	creds     *credstore.Store
	credsPath string
	srv       *httptest.Server
}

// newEnv wires a Session against a stub backend and a temp credentials
// file, the same shape main assembles.
func newEnv(t *testing.T, validateTimeout time.Duration, handler http.Handler) *testEnv {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var sess *Session
	client := apiclient.New(srv.URL, 5*time.Second, func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	}, zerolog.Nop())

	credsPath := filepath.Join(t.TempDir(), "credentials.json")
	creds := credstore.New(credsPath)
	sess = New(api.NewAuthClient(client), creds, validateTimeout, zerolog.Nop())

	return &testEnv{sess: sess, creds: creds, credsPath: credsPath, srv: srv}
}

func (e *testEnv) saveCreds(t *testing.T, token string) {
	t.Helper()
	if err := e.creds.Save(credstore.Credentials{Token: token, User: testProfile}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
}

func (e *testEnv) credsFileExists() bool {
	_, err := os.Stat(e.credsPath)
	return err == nil
}

func writeProfile(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(testProfile)
}

// ─── Bootstrap ──────────────────────────────────────────────────────────

func TestBootstrap(t *testing.T) {
	t.Run("NoStoredCredentials", func(t *testing.T) {
		env := newEnv(t, time.Second, http.NotFoundHandler())
		env.sess.Bootstrap()

		snap := env.sess.Snapshot()
		if snap.Token != "" || snap.User != nil || snap.IsAuthenticated {
			t.Errorf("expected empty session, got %+v", snap)
		}
	})

	t.Run("ExpiredTokenPurged", func(t *testing.T) {
		env := newEnv(t, time.Second, http.NotFoundHandler())
		env.saveCreds(t, mintToken(t, time.Now().Add(-time.Hour)))

		env.sess.Bootstrap()

		snap := env.sess.Snapshot()
		if snap.Token != "" || snap.IsAuthenticated {
			t.Errorf("expired token must not survive bootstrap, got %+v", snap)
		}
		if env.credsFileExists() {
			t.Error("credentials file should be purged for an expired token")
		}
	})

	t.Run("LiveTokenIsProvisional", func(t *testing.T) {
		env := newEnv(t, time.Second, http.NotFoundHandler())
		tok := mintToken(t, time.Now().Add(time.Hour))
		env.saveCreds(t, tok)

		env.sess.Bootstrap()

		snap := env.sess.Snapshot()
		if snap.Token != tok {
			t.Errorf("token = %q, want stored token", snap.Token)
		}
		if snap.User == nil || snap.User.Email != testProfile.Email {
			t.Errorf("user = %+v, want cached profile", snap.User)
		}
		if snap.IsAuthenticated {
			t.Error("session must stay provisional until the server confirms the token")
		}
	})

	t.Run("GarbageTokenPurged", func(t *testing.T) {
		env := newEnv(t, time.Second, http.NotFoundHandler())
		env.saveCreds(t, "not-a-jwt")

		env.sess.Bootstrap()

		if env.sess.Snapshot().Token != "" {
			t.Error("undecodable token must not be loaded")
		}
		if env.credsFileExists() {
			t.Error("credentials file should be purged for an undecodable token")
		}
	})
}

// ─── Login / Logout ─────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		tok := mintToken(t, time.Now().Add(time.Hour))
		env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			json.NewEncoder(w).Encode(model.LoginResponse{AccessToken: tok, User: testProfile})
		}))

		if err := env.sess.Login(context.Background(), "tigist@example.com", "s3cret-pass"); err != nil {
			t.Fatalf("Login: %v", err)
		}

		snap := env.sess.Snapshot()
		if !snap.IsAuthenticated || snap.Token != tok {
			t.Errorf("session not authenticated after login: %+v", snap)
		}
		stored, err := env.creds.Load()
		if err != nil {
			t.Fatalf("credentials not persisted: %v", err)
		}
		if stored.Token != tok || stored.User.ID != testProfile.ID {
			t.Errorf("persisted %+v", stored)
		}
	})

	t.Run("LocalValidationShortCircuits", func(t *testing.T) {
		hits := 0
		env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))

		err := env.sess.Login(context.Background(), "not-an-email", "pw")
		if err == nil {
			t.Fatal("expected validation error")
		}
		if apiclient.CodeOf(err) != apiclient.ErrCodeValidation {
			t.Errorf("code = %s, want validation", apiclient.CodeOf(err))
		}
		if hits != 0 {
			t.Errorf("backend hit %d times for an invalid payload, want 0", hits)
		}
		if env.sess.Snapshot().IsAuthenticated {
			t.Error("session must stay unauthenticated")
		}
	})

	t.Run("RejectedCredentials", func(t *testing.T) {
		env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		}))

		err := env.sess.Login(context.Background(), "tigist@example.com", "wrong-pass")
		if err == nil {
			t.Fatal("expected error")
		}

		snap := env.sess.Snapshot()
		if snap.IsAuthenticated {
			t.Error("rejected login must not authenticate")
		}
		if snap.Err != "Invalid credentials" {
			t.Errorf("err = %q, want server message", snap.Err)
		}
		if env.credsFileExists() {
			t.Error("nothing should be persisted on failure")
		}
	})
}

func TestLogoutClearsEverything(t *testing.T) {
	tok := mintToken(t, time.Now().Add(time.Hour))
	env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.MessageResponse{Message: "ok"})
	}))
	env.saveCreds(t, tok)
	env.sess.Bootstrap()

	env.sess.Logout(context.Background())

	snap := env.sess.Snapshot()
	if snap.Token != "" || snap.User != nil || snap.IsAuthenticated {
		t.Errorf("session not cleared: %+v", snap)
	}
	if env.credsFileExists() {
		t.Error("credentials file should be removed on logout")
	}
}

func TestLogoutSurvivesRemoteFailure(t *testing.T) {
	env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	env.saveCreds(t, mintToken(t, time.Now().Add(time.Hour)))
	env.sess.Bootstrap()

	env.sess.Logout(context.Background())

	if env.sess.Snapshot().Token != "" || env.credsFileExists() {
		t.Error("local state must be cleared even when the backend call fails")
	}
}

// ─── ValidateProfile ────────────────────────────────────────────────────

func TestValidateProfile(t *testing.T) {
	t.Run("SuccessConfirmsSession", func(t *testing.T) {
		fresh := testProfile
		fresh.Name = "Tigist A."
		env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/profile" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(fresh)
		}))
		env.saveCreds(t, mintToken(t, time.Now().Add(time.Hour)))
		env.sess.Bootstrap()

		if err := env.sess.ValidateProfile(context.Background()); err != nil {
			t.Fatalf("ValidateProfile: %v", err)
		}

		snap := env.sess.Snapshot()
		if !snap.IsAuthenticated {
			t.Error("session should be authenticated after validation")
		}
		if snap.User.Name != "Tigist A." {
			t.Errorf("profile not refreshed from server: %+v", snap.User)
		}
		stored, err := env.creds.Load()
		if err != nil || stored.User.Name != "Tigist A." {
			t.Errorf("stored profile not refreshed: %+v (%v)", stored, err)
		}
	})

	t.Run("RejectionLogsOut", func(t *testing.T) {
		env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"token revoked"}`))
		}))
		env.saveCreds(t, mintToken(t, time.Now().Add(time.Hour)))
		env.sess.Bootstrap()

		if err := env.sess.ValidateProfile(context.Background()); err == nil {
			t.Fatal("expected error")
		}

		snap := env.sess.Snapshot()
		if snap.Token != "" || snap.IsAuthenticated {
			t.Errorf("rejected token must be purged: %+v", snap)
		}
		if snap.Err == "" {
			t.Error("error message should be surfaced")
		}
		if env.credsFileExists() {
			t.Error("credentials file should be removed on rejection")
		}
	})

	t.Run("TimeoutKeepsCredentials", func(t *testing.T) {
		env := newEnv(t, 50*time.Millisecond, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			writeProfile(w)
		}))
		tok := mintToken(t, time.Now().Add(time.Hour))
		env.saveCreds(t, tok)
		env.sess.Bootstrap()

		err := env.sess.ValidateProfile(context.Background())
		if apiclient.CodeOf(err) != apiclient.ErrCodeTimeout {
			t.Fatalf("error = %v, want timeout", err)
		}

		snap := env.sess.Snapshot()
		if snap.Token != tok {
			t.Error("a timeout proves nothing; the token must be kept for retry")
		}
		if snap.IsAuthenticated {
			t.Error("timeout must not authenticate")
		}
		if !env.credsFileExists() {
			t.Error("credentials file must survive a timeout")
		}
	})

	t.Run("NoTokenRefused", func(t *testing.T) {
		env := newEnv(t, time.Second, http.NotFoundHandler())
		if err := env.sess.ValidateProfile(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("error = %v, want ErrNotAuthenticated", err)
		}
	})

	t.Run("SingleFlight", func(t *testing.T) {
		arrived := make(chan struct{})
		release := make(chan struct{})
		env := newEnv(t, 5*time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(arrived)
			<-release
			writeProfile(w)
		}))
		env.saveCreds(t, mintToken(t, time.Now().Add(time.Hour)))
		env.sess.Bootstrap()

		done := make(chan error, 1)
		go func() { done <- env.sess.ValidateProfile(context.Background()) }()
		<-arrived

		if err := env.sess.ValidateProfile(context.Background()); !errors.Is(err, ErrValidationInFlight) {
			t.Errorf("second call error = %v, want ErrValidationInFlight", err)
		}

		close(release)
		if err := <-done; err != nil {
			t.Fatalf("first call: %v", err)
		}
	})
}

// ─── ForceLogout ────────────────────────────────────────────────────────

func TestForceLogout(t *testing.T) {
	env := newEnv(t, time.Second, http.NotFoundHandler())
	env.saveCreds(t, mintToken(t, time.Now().Add(time.Hour)))
	env.sess.Bootstrap()

	env.sess.ForceLogout()

	snap := env.sess.Snapshot()
	if snap.Token != "" || snap.IsAuthenticated {
		t.Errorf("session not cleared: %+v", snap)
	}
	if snap.Err != apiclient.GetMessage(apiclient.ErrCodeUnauthorized) {
		t.Errorf("err = %q, want session-expired message", snap.Err)
	}
	if env.credsFileExists() {
		t.Error("credentials file should be removed")
	}
}

// ─── Refresh ────────────────────────────────────────────────────────────

func TestRefresh(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		next := mintToken(t, time.Now().Add(2*time.Hour))
		env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/refresh" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(model.RefreshResponse{AccessToken: next})
		}))
		env.saveCreds(t, mintToken(t, time.Now().Add(time.Hour)))
		env.sess.Bootstrap()

		if err := env.sess.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		if env.sess.Token() != next {
			t.Error("token not replaced")
		}
		stored, err := env.creds.Load()
		if err != nil || stored.Token != next {
			t.Errorf("refreshed token not persisted: %+v (%v)", stored, err)
		}
	})

	t.Run("FailureLogsOut", func(t *testing.T) {
		env := newEnv(t, time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		env.saveCreds(t, mintToken(t, time.Now().Add(time.Hour)))
		env.sess.Bootstrap()

		if err := env.sess.Refresh(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if env.sess.Token() != "" || env.credsFileExists() {
			t.Error("failed refresh must clear the session")
		}
	})
}
