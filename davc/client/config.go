package client

import "time"

type config struct {
	Schema   string
	Host     string
	Prefix   string
	User     string
	Password string
	Timeout  time.Duration
}

type Option func(*config)

func WithSchema(s string) Option {
	return func(c *config) {
		c.Schema = s
	}
}

func WithHost(e string) Option {
	return func(c *config) {
		c.Host = e
	}
}

// WithPrefix 服务端的webdav url前缀
func WithPrefix(p string) Option {
	return func(c *config) {
		c.Prefix = p
	}
}

func WithAuth(user string, password string) Option {
	return func(c *config) {
		c.User = user
		c.Password = password
	}
}

func WithTimeout(t time.Duration) Option {
	return func(c *config) {
		c.Timeout = t
	}
}
