package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitGeoIP_EmptyPath(t *testing.T) {
	t.Setenv("GEOIP_DB_PATH", "")
	if err := InitGeoIP(""); err != nil {
		t.Errorf("Expected no error with empty path, got %v", err)
	}
}

func TestInitGeoIP_NonExistentFile(t *testing.T) {
	if err := InitGeoIP("/nonexistent/path/to/geoip.mmdb"); err == nil {
		t.Error("Expected error for non-existent file")
	}
	if err := ValidateGeoIP("/nonexistent/path/to/geoip.mmdb"); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestGetIPLocation_LocalAndInvalid(t *testing.T) {
	for _, ip := range []string{"", "not-an-ip", "127.0.0.1", "::1", "10.0.0.1", "192.168.1.1", "172.16.4.2", "::"} {
		if loc := GetIPLocation(ip); loc != (IPLocation{}) {
			t.Errorf("Expected empty IPLocation for %q, got %+v", ip, loc)
		}
	}
}

func TestGetIPLocation_NoDB(t *testing.T) {
	CloseGeoIP()
	if loc := GetIPLocation("8.8.8.8"); loc != (IPLocation{}) {
		t.Errorf("Expected empty IPLocation when DB is closed, got %+v", loc)
	}
}

func TestGetIPLocation_CacheHit(t *testing.T) {
	geoipCache.Set("203.0.113.7", IPLocation{City: "Jakarta", Country: "Indonesia"}, time.Minute)
	defer geoipCache.Delete("203.0.113.7")

	hitsBefore, _, _ := GetGeoIPCacheMetrics()
	loc := GetIPLocation("203.0.113.7")
	if loc.String() != "Jakarta/Indonesia" {
		t.Errorf("Expected cached location, got %+v", loc)
	}
	hitsAfter, _, _ := GetGeoIPCacheMetrics()
	if hitsAfter != hitsBefore+1 {
		t.Errorf("Expected one cache hit, got %d -> %d", hitsBefore, hitsAfter)
	}
}

func TestIPLocationString(t *testing.T) {
	cases := map[IPLocation]string{
		{City: "Jakarta", Country: "Indonesia"}: "Jakarta/Indonesia",
		{Country: "ID"}:                         "ID",
		{City: "Bandung"}:                       "Bandung",
		{}:                                      "",
	}
	for loc, want := range cases {
		if got := loc.String(); got != want {
			t.Errorf("%+v: expected %q, got %q", loc, want, got)
		}
	}
}

func TestDownloadGeoIP_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "geoip.mmdb")
	if _, err := DownloadGeoIP(context.Background(), server.URL, dest); err == nil {
		t.Error("Expected error for HTTP 404")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("Expected no file after failed download")
	}
}

func TestDownloadGeoIP_Success(t *testing.T) {
	payload := []byte("mock geoip database content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "sub", "geoip.mmdb")
	got, err := DownloadGeoIP(context.Background(), server.URL, dest)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != dest {
		t.Errorf("Expected result path %s, got %s", dest, got)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Expected file content %q, got %q", payload, data)
	}
}

func TestDownloadGeoIP_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := DownloadGeoIP(ctx, server.URL, filepath.Join(t.TempDir(), "geoip.mmdb")); err == nil {
		t.Error("Expected error due to context cancellation")
	}
}
