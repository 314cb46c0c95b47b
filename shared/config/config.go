package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	MediaDir             string        `yaml:"media_dir"`
	MaxRequestBytes      int64         `yaml:"max_request_bytes"` // whole multipart body, checked before parsing
	MaxPostImages        int           `yaml:"max_post_images"`
	MaxCommentImages     int           `yaml:"max_comment_images"`
	MaxImageDimension    int           `yaml:"max_image_dimension"` // longest side after re-encoding, px
	JpegQuality          int           `yaml:"jpeg_quality"`
	AllowedExtensions    []string      `yaml:"allowed_extensions"`
	MaxDecodedImageBytes int64         `yaml:"max_decoded_image_bytes"` // width*height*4 budget
	JwtTTL               time.Duration `yaml:"jwt_ttl"`
	SecureCookies        bool          `yaml:"secure_cookies"`
	AllowedOrigins       []string      `yaml:"allowed_origins"`
	LogLevel             string        `yaml:"log_level"`
	LogJSON              bool          `yaml:"log_json"`

	MediaGCInterval        time.Duration `yaml:"media_gc_interval"`
	MediaGCSafetyThreshold time.Duration `yaml:"media_gc_safety_threshold"` // unreferenced files younger than this are kept
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

// Default returns the values the service runs with when public.yaml omits them.
func Default() Public {
	return Public{
		MediaDir:               "static/uploads",
		MaxRequestBytes:        16 << 20,
		MaxPostImages:          9,
		MaxCommentImages:       3,
		MaxImageDimension:      800,
		JpegQuality:            85,
		AllowedExtensions:      []string{"png", "jpg", "jpeg", "gif"},
		MaxDecodedImageBytes:   256 << 20,
		JwtTTL:                 24 * time.Hour,
		LogLevel:               "info",
		MediaGCInterval:        time.Hour,
		MediaGCSafetyThreshold: time.Hour,
	}
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

func MustLoad(configFolder string) *Config {
	public := Default()
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	if err := cfg.validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

func (s *Config) validate() error {
	p := s.Public
	switch {
	case p.MediaDir == "":
		return fmt.Errorf("config: media_dir is required")
	case p.MaxRequestBytes <= 0:
		return fmt.Errorf("config: max_request_bytes must be positive")
	case p.MaxPostImages < 0 || p.MaxCommentImages < 0:
		return fmt.Errorf("config: image caps must not be negative")
	case p.MaxImageDimension <= 0:
		return fmt.Errorf("config: max_image_dimension must be positive")
	case p.JpegQuality < 1 || p.JpegQuality > 100:
		return fmt.Errorf("config: jpeg_quality must be in [1, 100]")
	case p.MediaGCInterval <= 0:
		return fmt.Errorf("config: media_gc_interval must be positive")
	case len(p.AllowedExtensions) == 0:
		return fmt.Errorf("config: allowed_extensions is required")
	case s.Private.JwtKey == "":
		return fmt.Errorf("config: jwt_key is required")
	}
	return nil
}
