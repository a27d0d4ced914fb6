package config

import "testing"

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		User:     "bazaar",
		Password: "secret",
		Name:     "bazaar",
	}

	want := "bazaar:secret@tcp(db.internal:3307)/bazaar?parseTime=true"
	if got := cfg.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
