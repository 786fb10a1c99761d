package redis

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config represents Redis configuration options
type Config struct {
	Host     string
	Port     int
	Password string
	Database int
	// PoolSize is the maximum number of socket connections
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// KeyNamespace prefixes every cache, lock and channel name built by this package
	KeyNamespace string
	// CacheTTLs maps cache names to their TTL; caches not listed use DefaultCacheTTL
	CacheTTLs       map[string]time.Duration
	DefaultCacheTTL time.Duration
}

// NewRedisConfig creates a new Redis configuration with default values
func NewRedisConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            6379,
		PoolSize:        20,
		MinIdleConns:    2,
		MaxRetries:      3,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		CacheTTLs:       make(map[string]time.Duration),
		DefaultCacheTTL: time.Hour,
	}
}

func (c *Config) WithHost(host string) *Config {
	c.Host = host
	return c
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

// WithAddr sets host and port from a "host:port" string.
func (c *Config) WithAddr(addr string) *Config {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		c.Host = addr
		return c
	}
	c.Host = host
	if p, err := strconv.Atoi(port); err == nil {
		c.Port = p
	}
	return c
}

func (c *Config) WithPassword(password string) *Config {
	c.Password = password
	return c
}

func (c *Config) WithDatabase(database int) *Config {
	c.Database = database
	return c
}

func (c *Config) WithPoolSize(poolSize int) *Config {
	c.PoolSize = poolSize
	return c
}

func (c *Config) WithKeyNamespace(namespace string) *Config {
	c.KeyNamespace = namespace
	return c
}

// WithCacheTTL sets the TTL used by the cache with the given name
func (c *Config) WithCacheTTL(cacheName string, ttl time.Duration) *Config {
	if c.CacheTTLs == nil {
		c.CacheTTLs = make(map[string]time.Duration)
	}
	c.CacheTTLs[cacheName] = ttl
	return c
}

func (c *Config) WithDefaultCacheTTL(ttl time.Duration) *Config {
	c.DefaultCacheTTL = ttl
	return c
}

// Addr returns the "host:port" address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// CacheTTL returns the TTL configured for cacheName, or the default TTL.
func (c *Config) CacheTTL(cacheName string) time.Duration {
	if ttl, ok := c.CacheTTLs[cacheName]; ok && ttl > 0 {
		return ttl
	}
	return c.DefaultCacheTTL
}

// namespaced joins the configured namespace and name with "::"
func (c *Config) namespaced(name string) string {
	if c.KeyNamespace == "" {
		return name
	}
	return c.KeyNamespace + "::" + name
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Database < 0 || c.Database > 15 {
		return fmt.Errorf("invalid database: %d, must be between 0 and 15", c.Database)
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("invalid pool size: %d", c.PoolSize)
	}
	return nil
}
