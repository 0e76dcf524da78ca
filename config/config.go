package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/xxxsen/common/logger"
)

var validate = validator.New()

type Config struct {
	Host              string           `json:"host"`
	Port              uint16           `json:"port" validate:"required"`
	LogInfo           logger.LogConfig `json:"log_info"`
	RootPath          string           `json:"root_path" validate:"required,startswith=/"`
	URLPrefix         string           `json:"url_prefix"`
	BrowsePrefix      string           `json:"browse_prefix"`
	Username          string           `json:"username"`
	Password          string           `json:"password"`
	AuthEnabled       bool             `json:"auth_enabled"`
	UploadEnabled     bool             `json:"upload_enabled"`
	DownloadEnabled   bool             `json:"download_enabled"`
	DeletionEnabled   bool             `json:"deletion_enabled"`
	BufferSize        int              `json:"buffer_size" validate:"gte=512,lte=1048576"`
	MaxTransfers      int64            `json:"max_transfers" validate:"gte=1"`
	UploadIdleTimeout int64            `json:"upload_idle_timeout" validate:"gte=0"` //秒, 0表示不限制
	AtomicUpload      bool             `json:"atomic_upload"`
	MetricsEnabled    bool             `json:"metrics_enabled"`
}

// Bind 监听地址
func (c *Config) Bind() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthActive 仅在开启认证且配置了用户名时生效
func (c *Config) AuthActive() bool {
	return c.AuthEnabled && len(c.Username) > 0
}

func defaultConfig() *Config {
	return &Config{
		Port: 80,
		LogInfo: logger.LogConfig{
			Level:   "info",
			Console: true,
		},
		RootPath:          "/sdcard",
		URLPrefix:         "/sdcard",
		BrowsePrefix:      "/files",
		AuthEnabled:       true,
		UploadEnabled:     true,
		DownloadEnabled:   true,
		DeletionEnabled:   true,
		BufferSize:        2048,
		MaxTransfers:      4,
		UploadIdleTimeout: 30,
	}
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	return ParseBytes(raw)
}

func ParseBytes(raw []byte) (*Config, error) {
	c := defaultConfig()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode json failed, err:%w", err)
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func Validate(c *Config) error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)", e.Namespace(), e.Tag(), e.Value())
		}
		return fmt.Errorf("validate config failed, err:%w", err)
	}
	return nil
}
