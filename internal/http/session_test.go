package http

import (
	"testing"

	"github.com/Shashhank12/Budget-Buddy/internal/config"
	"github.com/Shashhank12/Budget-Buddy/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{SecretKey: "test-secret"}
}

func TestSessionRoundTrip(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: 42, FullName: "Ada Lovelace"}

	token, err := issueSession(cfg, user)
	if err != nil {
		t.Fatalf("issueSession: %v", err)
	}

	id, name, err := parseSession(cfg, token)
	if err != nil {
		t.Fatalf("parseSession: %v", err)
	}
	if id != 42 || name != "Ada Lovelace" {
		t.Errorf("parsed (%d, %q), want (42, Ada Lovelace)", id, name)
	}
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	cfg := testConfig()
	token, err := issueSession(cfg, &models.User{ID: 1, FullName: "A"})
	if err != nil {
		t.Fatalf("issueSession: %v", err)
	}

	if _, _, err := parseSession(cfg, token+"x"); err == nil {
		t.Error("tampered token accepted")
	}
	if _, _, err := parseSession(cfg, "not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}

	other := &config.Config{SecretKey: "different-secret"}
	if _, _, err := parseSession(other, token); err == nil {
		t.Error("token signed with another key accepted")
	}
}
