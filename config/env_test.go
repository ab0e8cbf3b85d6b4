package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OFFICE_CONFIG", "OFFICE_LAT", "OFFICE_LON", "OFFICE_RADIUS_METERS", "DISPLAY_TIMEZONE", "GEOFENCE_METHOD"} {
		t.Setenv(k, "")
	}
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Office.Location.Lat != defaultOfficeLat || cfg.Office.Location.Lon != defaultOfficeLon {
		t.Errorf("unexpected office %+v", cfg.Office.Location)
	}
	if cfg.Office.RadiusMeters != 100 {
		t.Errorf("expected 100, got %v", cfg.Office.RadiusMeters)
	}
	if cfg.DisplayTimezone.String() != "Asia/Kolkata" {
		t.Errorf("expected Asia/Kolkata, got %s", cfg.DisplayTimezone)
	}
	if cfg.GeofenceMethod != "wgs84" {
		t.Errorf("expected wgs84, got %s", cfg.GeofenceMethod)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestLoad_ReportsAllInvalidValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("OFFICE_LAT", "north")
	t.Setenv("OFFICE_RADIUS_METERS", "-5")
	t.Setenv("DISPLAY_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"OFFICE_LAT", "OFFICE_RADIUS_METERS", "DISPLAY_TIMEZONE"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %s in %q", want, err.Error())
		}
	}
}

func TestLoad_OfficeFileWithEnvOverride(t *testing.T) {
	setBaseEnv(t)
	path := filepath.Join(t.TempDir(), "office.yaml")
	yaml := "office:\n  name: Studio\n  location:\n    lat: 12.97\n    lon: 77.59\n  radius_meters: 50\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("OFFICE_CONFIG", path)
	t.Setenv("OFFICE_RADIUS_METERS", "75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Office.Name != "Studio" || cfg.Office.Location.Lat != 12.97 || cfg.Office.Location.Lon != 77.59 {
		t.Errorf("unexpected office %+v", cfg.Office)
	}
	if cfg.Office.RadiusMeters != 75 {
		t.Errorf("expected env override 75, got %v", cfg.Office.RadiusMeters)
	}
}

func TestLoad_OfficeOutOfRange(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("OFFICE_LAT", "95")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "office") {
		t.Fatalf("expected office error, got %v", err)
	}
}
