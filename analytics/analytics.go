// Package analytics provides privacy-first page-view tracking for the site.
// No raw IP addresses or cookies with personal data are stored: visitors are
// identified by a salted hash of IP and user agent, sessions by a random
// UUID cookie. The locale dimension records which of the site's languages a
// visit used, which is what the editors actually look at.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for hashing, protected by
// sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for visitor hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// Visit is a single page view.
type Visit struct {
	ID        int64     `json:"-"`
	VisitorID string    `json:"visitor_id"`
	SessionID string    `json:"session_id"`
	IPHash    string    `json:"-"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	Locale    string    `json:"locale"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats holds aggregated analytics for one period.
type Stats struct {
	Period         string          `json:"period"`
	UniqueVisitors int             `json:"unique_visitors"`
	TotalViews     int             `json:"total_views"`
	TopPages       []PageStat      `json:"top_pages"`
	LocaleStats    []DimensionStat `json:"locales"`
	DeviceStats    []DimensionStat `json:"devices"`
	DailyViews     []DailyView     `json:"daily_views"`
}

// PageStat is the view count for one path.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DimensionStat is a count for one value of a breakdown dimension.
type DimensionStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DailyView is the view count for one day.
type DailyView struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// HashIP creates a salted SHA-256 hash of an IP address.
func HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// VisitorID creates a salted fingerprint from IP and user agent.
func VisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// DeviceClass coarsely classifies a user agent. Tablets are checked before
// mobile because iPad user agents also contain "mobile".
func DeviceClass(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		return "Tablet"
	case strings.Contains(ua, "mobile"):
		return "Mobile"
	default:
		return "Desktop"
	}
}

// botMarkers are user-agent fragments identifying crawlers whose visits are
// not counted.
var botMarkers = []string{
	"bot", "crawler", "spider", "slurp", "curl", "wget",
	"facebookexternalhit", "whatsapp", "telegram", "preview",
}

// IsBot reports whether the user agent is likely a crawler.
func IsBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}
