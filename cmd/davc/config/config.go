package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Schema   string `json:"schema"`
	Host     string `json:"host"`
	Prefix   string `json:"prefix"`
	Username string `json:"username"`
	Password string `json:"password"`
	Thread   int    `json:"thread"`
	PartSize int64  `json:"part_size"`
	LogLevel string `json:"log_level"`
	Timeout  int64  `json:"timeout"`
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		Schema:   "http",
		Prefix:   "/sdcard",
		Thread:   4,
		PartSize: 8 * 1024 * 1024,
		LogLevel: "info",
		Timeout:  600,
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unmarshal file:%w", err)
	}
	return c, nil
}
