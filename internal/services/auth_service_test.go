package services_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	return db
}

func authSvc(t *testing.T) *services.AuthService {
	t.Helper()
	db := memdb(t)
	return &services.AuthService{
		Users:  repos.NewUserRepo(db),
		Tokens: services.NewTokenService("test-secret", time.Hour),
	}
}

func register(t *testing.T, svc *services.AuthService, username, email string) {
	t.Helper()
	_, err := svc.Register(services.RegisterInput{
		Username: username,
		Email:    email,
		Password: "Passw0rd!",
		Name:     "Test User",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	se, ok := err.(*services.StatusError)
	if !ok {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if se.Status != status {
		t.Fatalf("status = %d, want %d (%s)", se.Status, status, se.Message)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := authSvc(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(services.RegisterInput{
		Username: "alice2", Email: "alice@example.com", Password: "Passw0rd!",
	})
	wantStatus(t, err, http.StatusConflict)

	_, err = svc.Register(services.RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "Passw0rd!",
	})
	wantStatus(t, err, http.StatusConflict)

	// case-insensitive uniqueness
	_, err = svc.Register(services.RegisterInput{
		Username: "alice3", Email: "ALICE@example.com", Password: "Passw0rd!",
	})
	wantStatus(t, err, http.StatusConflict)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := authSvc(t)

	_, err := svc.Register(services.RegisterInput{Username: "bob", Email: "not-an-email", Password: "Passw0rd!"})
	wantStatus(t, err, http.StatusBadRequest)

	_, err = svc.Register(services.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "weak"})
	wantStatus(t, err, http.StatusBadRequest)

	_, err = svc.Register(services.RegisterInput{Username: "x", Email: "bob@example.com", Password: "Passw0rd!"})
	wantStatus(t, err, http.StatusBadRequest)
}

func TestRegisterHashesPasswordAndDefaultsPhoto(t *testing.T) {
	svc := authSvc(t)
	u, err := svc.Register(services.RegisterInput{
		Username: "carol", Email: "carol@example.com", Password: "Passw0rd!",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Hash == "Passw0rd!" || u.Hash == "" {
		t.Fatalf("password stored unhashed: %q", u.Hash)
	}
	if u.PhotoPath == "" {
		t.Fatal("expected default photo path")
	}
}

func TestLogin(t *testing.T) {
	svc := authSvc(t)
	register(t, svc, "dave", "dave@example.com")

	u, token, err := svc.Login("dave@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	email, err := svc.Tokens.VerifySubject(token)
	if err != nil || email != u.Email {
		t.Fatalf("token subject = %s (%v)", email, err)
	}
	id, err := svc.Tokens.ExtractUserID(token)
	if err != nil || id != u.ID {
		t.Fatalf("token user id = %d (%v)", id, err)
	}

	if _, _, err := svc.Login("dave@example.com", "wrong-password"); err != services.ErrBadCreds {
		t.Fatalf("expected ErrBadCreds, got %v", err)
	}
	// Unknown email collapses to the same failure as a bad password.
	if _, _, err := svc.Login("nobody@example.com", "Passw0rd!"); err != services.ErrBadCreds {
		t.Fatalf("expected ErrBadCreds, got %v", err)
	}
}
