package davc

import "github.com/xxxsen/sdwebdav/davc/client"

type config struct {
	Thread   int
	PartSize int64
	Resume   bool
	Client   client.IClient
}

type Option func(*config)

func WithClient(cli client.IClient) Option {
	return func(c *config) {
		c.Client = cli
	}
}

// WithThread 同时上传的文件数
func WithThread(t int) Option {
	return func(c *config) {
		c.Thread = t
	}
}

// WithPartSize 单个PUT请求携带的最大数据量
func WithPartSize(sz int64) Option {
	return func(c *config) {
		c.PartSize = sz
	}
}

// WithResume 远端已存在较小的同名文件时从其末尾继续上传
func WithResume(v bool) Option {
	return func(c *config) {
		c.Resume = v
	}
}
