// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/encoding/htmlindex"
)

const (
	MinPageSize     = 10
	MaxPageSize     = 500
	DefaultPageSize = MaxPageSize

	ExtractorRegex = "regex"
	ExtractorDOM   = "dom"
)

type Config struct {
	ForumBaseURL    string
	ThreadPath      string
	PageSize        int
	RequestDelay    time.Duration
	MaxRequestsPerS float64
	SourceEncoding  string
	Location        *time.Location
	BootstrapThread int64
	Extractor       string
	Headers         map[string]string
	RequestTimeout  time.Duration
	MaxRedirects    int
	ProxyURLs       []string
	TLSFingerprint  bool
	InsecureTLS     bool
	OutputDir       string
	LogLevel        string
	LogFormat       string
	ServerPort      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// DefaultBrowserHeaders is the header set of an ordinary browser navigation.
// The forum varies its behavior for clients that do not look like one.
func DefaultBrowserHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.9",
		"Accept-Language":           "en-US,en;q=0.9,hu;q=0.8",
		"Accept-Charset":            "utf-8",
		"Accept-Encoding":           "gzip, deflate, br",
		"Cache-Control":             "no-cache",
		"Connection":                "keep-alive",
		"DNT":                       "1",
		"Pragma":                    "no-cache",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
		"Upgrade-Insecure-Requests": "1",
		"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	}
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var proxyURLs []string
	if proxyURLsStr := strings.TrimSpace(os.Getenv("PROXY_URLS")); proxyURLsStr != "" {
		for _, proxy := range strings.Split(proxyURLsStr, ",") {
			proxy = strings.TrimSpace(proxy)
			if proxy == "" {
				continue
			}

			if !strings.HasPrefix(proxy, "http://") && !strings.HasPrefix(proxy, "https://") && !strings.HasPrefix(proxy, "socks5://") {
				return nil, fmt.Errorf("invalid proxy URL format, must start with http://, https:// or socks5://: %s", proxy)
			}

			if _, err := url.Parse(proxy); err != nil {
				return nil, fmt.Errorf("invalid proxy URL %s: %w", proxy, err)
			}

			proxyURLs = append(proxyURLs, proxy)
		}
	}

	baseURL := strings.TrimRight(getEnv("FORUM_BASE_URL", "https://forum.index.hu"), "/")
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid FORUM_BASE_URL %q", baseURL)
	}

	sourceEncoding := getEnv("FORUM_SOURCE_ENCODING", "windows-1250")
	if _, err := htmlindex.Get(sourceEncoding); err != nil {
		return nil, fmt.Errorf("unknown FORUM_SOURCE_ENCODING %q: %w", sourceEncoding, err)
	}

	location := time.Local
	if tz := os.Getenv("FORUM_TIMEZONE"); tz != "" {
		location, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid FORUM_TIMEZONE %q: %w", tz, err)
		}
	}

	extractor := strings.ToLower(getEnv("FORUM_EXTRACTOR", ExtractorRegex))
	if extractor != ExtractorRegex && extractor != ExtractorDOM {
		return nil, fmt.Errorf("invalid FORUM_EXTRACTOR %q, must be %q or %q", extractor, ExtractorRegex, ExtractorDOM)
	}

	headers := DefaultBrowserHeaders()
	if ua := os.Getenv("FORUM_USER_AGENT"); ua != "" {
		headers["User-Agent"] = ua
	}
	if al := os.Getenv("FORUM_ACCEPT_LANGUAGE"); al != "" {
		headers["Accept-Language"] = al
	}

	return &Config{
		ForumBaseURL:    baseURL,
		ThreadPath:      getEnv("FORUM_THREAD_PATH", "/Article/showArticle"),
		PageSize:        ClampPageSize(getEnvInt("FORUM_PAGE_SIZE", DefaultPageSize)),
		RequestDelay:    getEnvDuration("FORUM_REQUEST_DELAY", 3*time.Second),
		MaxRequestsPerS: getEnvFloat("FORUM_MAX_RPS", 1),
		SourceEncoding:  sourceEncoding,
		Location:        location,
		BootstrapThread: int64(getEnvInt("FORUM_BOOTSTRAP_THREAD", 1)),
		Extractor:       extractor,
		Headers:         headers,
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxRedirects:    getEnvInt("MAX_REDIRECTS", 10),
		ProxyURLs:       proxyURLs,
		TLSFingerprint:  getEnvBool("TLS_FINGERPRINT", false),
		InsecureTLS:     getEnvBool("TLS_INSECURE_SKIP_VERIFY", false),
		OutputDir:       getEnv("OUTPUT_DIR", "data"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Minute),
	}, nil
}

// ClampPageSize keeps n within the window sizes the forum accepts.
func ClampPageSize(n int) int {
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
