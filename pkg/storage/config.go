package storage

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// Backend selects the object store implementation.
type Backend string

const (
	BackendFilesystem Backend = "filesystem"
	BackendS3         Backend = "s3"
)

// Config contains object storage configuration.
type Config struct {
	Backend Backend `toml:"backend"`

	// BasePath is the root directory for the filesystem backend.
	// Default: ".data/objects"
	BasePath string `toml:"base_path"`

	// PublicURL is the address prefix objects are served under.
	// Public addresses take the form {PublicURL}/{bucket}/{path}.
	PublicURL string `toml:"public_url"`

	MaxUploadSize string `toml:"max_upload_size"`

	// Buckets maps logical names to bucket names. Every bucket is provisioned on start.
	Buckets map[string]string `toml:"buckets"`

	S3 S3Config `toml:"s3"`

	maxUploadSizeVal int64
}

// S3Config contains connection settings for an S3-compatible object store.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use_ssl"`
}

// Env maps environment variable names for storage configuration.
type Env struct {
	Backend       string
	BasePath      string
	PublicURL     string
	MaxUploadSize string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	S3Region      string
	S3UseSSL      string
}

// MaxUploadSizeBytes returns the parsed max upload size.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Bucket returns the bucket registered under name, or name itself when unmapped.
func (c *Config) Bucket(name string) string {
	if b, ok := c.Buckets[name]; ok {
		return b
	}
	return name
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.PublicURL != "" {
		c.PublicURL = overlay.PublicURL
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
	for name, bucket := range overlay.Buckets {
		if c.Buckets == nil {
			c.Buckets = make(map[string]string)
		}
		c.Buckets[name] = bucket
	}
	if overlay.S3.Endpoint != "" {
		c.S3.Endpoint = overlay.S3.Endpoint
	}
	if overlay.S3.AccessKey != "" {
		c.S3.AccessKey = overlay.S3.AccessKey
	}
	if overlay.S3.SecretKey != "" {
		c.S3.SecretKey = overlay.S3.SecretKey
	}
	if overlay.S3.Region != "" {
		c.S3.Region = overlay.S3.Region
	}
	if overlay.S3.UseSSL {
		c.S3.UseSSL = true
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/objects"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if c.PublicURL == "" {
		switch c.Backend {
		case BackendS3:
			if c.S3.Endpoint != "" {
				scheme := "http"
				if c.S3.UseSSL {
					scheme = "https"
				}
				c.PublicURL = scheme + "://" + c.S3.Endpoint
			}
		default:
			c.PublicURL = "http://localhost:8080/storage"
		}
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(name string, target *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}

	if env.Backend != "" {
		if v := os.Getenv(env.Backend); v != "" {
			c.Backend = Backend(v)
		}
	}
	setString(env.BasePath, &c.BasePath)
	setString(env.PublicURL, &c.PublicURL)
	setString(env.MaxUploadSize, &c.MaxUploadSize)
	setString(env.S3Endpoint, &c.S3.Endpoint)
	setString(env.S3AccessKey, &c.S3.AccessKey)
	setString(env.S3SecretKey, &c.S3.SecretKey)
	setString(env.S3Region, &c.S3.Region)

	if env.S3UseSSL != "" {
		if v := os.Getenv(env.S3UseSSL); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.S3.UseSSL = b
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case BackendS3:
		if c.S3.Endpoint == "" {
			return fmt.Errorf("s3.endpoint required")
		}
		if c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			return fmt.Errorf("s3 credentials required")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be filesystem or s3)", c.Backend)
	}

	u, err := url.Parse(c.PublicURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid public_url: %q", c.PublicURL)
	}
	c.PublicURL = strings.TrimSuffix(c.PublicURL, "/")

	for name, bucket := range c.Buckets {
		if !validBucket(bucket) {
			return fmt.Errorf("invalid bucket %s: %q", name, bucket)
		}
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
