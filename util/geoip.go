package util

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oschwald/geoip2-golang"
	cache "github.com/patrickmn/go-cache"
)

// IPLocation is the coarse location attached to security log entries.
type IPLocation struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// String renders "City/Country", or whichever part is known.
func (l IPLocation) String() string {
	switch {
	case l.City != "" && l.Country != "":
		return l.City + "/" + l.Country
	case l.Country != "":
		return l.Country
	default:
		return l.City
	}
}

var (
	geoMu          sync.RWMutex
	geoipDB        *geoip2.Reader
	geoipCache     = cache.New(24*time.Hour, time.Hour)
	geoipCacheHits int64
	geoipCacheMiss int64
)

// InitGeoIP opens a GeoIP2/GeoLite2 .mmdb file. An empty path falls back to
// GEOIP_DB_PATH; if that is empty too, lookups stay disabled.
func InitGeoIP(dbPath string) error {
	if dbPath == "" {
		dbPath = os.Getenv("GEOIP_DB_PATH")
	}
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoMu.Lock()
	geoipDB = r
	geoMu.Unlock()
	geoipCache.Flush()
	return nil
}

func CloseGeoIP() {
	geoMu.Lock()
	defer geoMu.Unlock()
	if geoipDB != nil {
		_ = geoipDB.Close()
		geoipDB = nil
	}
}

// DownloadGeoIP fetches an .mmdb (optionally .gz) from url into destPath,
// replacing the file atomically.
func DownloadGeoIP(ctx context.Context, url, destPath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := (&http.Client{Timeout: 60 * time.Second}).Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download, status: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(destPath), "geoip-*.tmp")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	defer func() { _ = tmp.Close() }()

	var src io.Reader = resp.Body
	if filepath.Ext(url) == ".gz" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		src = gz
	}
	if _, err := io.Copy(tmp, src); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// ValidateGeoIP checks that path opens as a GeoIP database.
func ValidateGeoIP(path string) error {
	r, err := geoip2.Open(path)
	if err != nil {
		return err
	}
	return r.Close()
}

func isLocalIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast()
}

// GetIPLocation resolves ip through the cache, then the local database.
// Unknown, local and unparsable addresses yield the zero IPLocation.
func GetIPLocation(ip string) IPLocation {
	parsed := net.ParseIP(ip)
	if parsed == nil || isLocalIP(parsed) {
		return IPLocation{}
	}

	if v, ok := geoipCache.Get(ip); ok {
		atomic.AddInt64(&geoipCacheHits, 1)
		if loc, ok := v.(IPLocation); ok {
			return loc
		}
	}
	atomic.AddInt64(&geoipCacheMiss, 1)

	geoMu.RLock()
	db := geoipDB
	geoMu.RUnlock()
	if db == nil {
		return IPLocation{}
	}

	rec, err := db.City(parsed)
	if err != nil {
		return IPLocation{}
	}
	loc := IPLocation{City: rec.City.Names["en"], Country: rec.Country.Names["en"]}
	if loc.Country == "" {
		loc.Country = rec.Country.IsoCode
	}
	geoipCache.Set(ip, loc, cache.DefaultExpiration)
	return loc
}

// GetGeoIPCacheMetrics returns cache hits, misses and the current size.
func GetGeoIPCacheMetrics() (hits int64, misses int64, size int) {
	return atomic.LoadInt64(&geoipCacheHits), atomic.LoadInt64(&geoipCacheMiss), geoipCache.ItemCount()
}
