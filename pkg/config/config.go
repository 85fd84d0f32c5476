package config

import (
	"strings"
	"time"
)

// WebService definition web_service YAML structure
type WebService struct {
	Port    string `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`

	Letter    LetterConfig    `mapstructure:"letter"`
	QR        QRConfig        `mapstructure:"qr"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Site      SiteConfig      `mapstructure:"site"`
}

// LetterConfig letter 編碼設定
type LetterConfig struct {
	// 顯示日期所用的時區 (JST = 9)
	UTCOffsetHours int    `mapstructure:"utc_offset_hours"`
	DefaultScheme  string `mapstructure:"default_scheme"`
}

// QRConfig QR 圖片服務設定, providers 依序嘗試
type QRConfig struct {
	Timeout   time.Duration      `mapstructure:"timeout"`
	Providers []QRProviderConfig `mapstructure:"providers"`
}

// QRProviderConfig 單一 QR 圖片服務
type QRProviderConfig struct {
	Name     string `mapstructure:"name"`
	Endpoint string `mapstructure:"endpoint"`
	Size     int    `mapstructure:"size"`
	// L / M / Q / H
	ECC          string        `mapstructure:"ecc"`
	Margin       int           `mapstructure:"margin"`
	MaxURLLength int           `mapstructure:"max_url_length"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// AnalyticsConfig Google Analytics Data API 設定
type AnalyticsConfig struct {
	PropertyID  string        `mapstructure:"property_id"`
	ClientEmail string        `mapstructure:"client_email"`
	PrivateKey  string        `mapstructure:"private_key"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	PathFilter  string        `mapstructure:"path_filter"`
}

// Enabled 是否已設定 GA 憑證
func (a AnalyticsConfig) Enabled() bool {
	return a.PropertyID != "" && a.ClientEmail != "" && a.PrivateKey != ""
}

// RedisConfig definition redis setting, 未設定 addr 與 sentinel 時不使用 redis
type RedisConfig struct {
	Addr          string   `mapstructure:"addr"`
	MasterName    string   `mapstructure:"master_name"`
	SentinelAddrs []string `mapstructure:"sentinel_addrs"`
	Password      string   `mapstructure:"password"`
	RedisDB       int      `mapstructure:"redis_db"`
}

// Enabled 是否有設定 redis
func (r RedisConfig) Enabled() bool {
	return r.Addr != "" || len(r.SentinelAddrs) > 0
}

// RateLimitConfig QR 代理的每個 client 限流
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// SiteConfig 頁面設定
type SiteConfig struct {
	GAMeasurementID string `mapstructure:"ga_measurement_id"`
	ContactEmail    string `mapstructure:"contact_email"`
}

// ApplyDefaults 補上未設定的欄位
func (c *WebService) ApplyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:" + c.Port
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.Letter.UTCOffsetHours == 0 {
		c.Letter.UTCOffsetHours = 9
	}
	if c.Letter.DefaultScheme == "" {
		c.Letter.DefaultScheme = "compact"
	}

	if c.QR.Timeout <= 0 {
		c.QR.Timeout = 5 * time.Second
	}
	if len(c.QR.Providers) == 0 {
		c.QR.Providers = DefaultQRProviders()
	}
	for i := range c.QR.Providers {
		p := &c.QR.Providers[i]
		if p.Size <= 0 {
			p.Size = 300
		}
		if p.Timeout <= 0 {
			p.Timeout = c.QR.Timeout
		}
	}

	if c.Analytics.CacheTTL <= 0 {
		c.Analytics.CacheTTL = 5 * time.Minute
	}
	if c.Analytics.PathFilter == "" {
		c.Analytics.PathFilter = "/letter"
	}
	if c.Redis.MasterName == "" {
		c.Redis.MasterName = "mymaster"
	}

	if c.RateLimit.RPS <= 0 {
		c.RateLimit.RPS = 1
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 5
	}
	if c.Site.ContactEmail == "" {
		c.Site.ContactEmail = "otodokelife@gmail.com"
	}
}

// DefaultQRProviders api.qrserver.com 為主, qrickit.com 為備援
func DefaultQRProviders() []QRProviderConfig {
	return []QRProviderConfig{
		{
			Name:     "qrserver",
			Endpoint: "https://api.qrserver.com/v1/create-qr-code/",
			Size:     300,
			ECC:      "M",
			Margin:   10,
		},
		{
			Name:         "qrickit",
			Endpoint:     "https://qrickit.com/api/qr.php",
			Size:         300,
			ECC:          "L",
			MaxURLLength: 4000,
		},
	}
}
