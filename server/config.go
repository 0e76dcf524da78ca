package server

import (
	"time"

	"github.com/xxxsen/sdwebdav/auth"
	"github.com/xxxsen/sdwebdav/filestore"
)

const (
	defaultRoot         = "/sdcard"
	defaultURLPrefix    = "/sdcard"
	defaultBrowsePrefix = "/files"
	defaultBufferSize   = 2048
	defaultMaxTransfers = 4
)

type config struct {
	root            string
	urlPrefix       string
	browsePrefix    string
	store           filestore.IFileStore
	auth            auth.IAuth
	downloadEnabled bool
	uploadEnabled   bool
	deletionEnabled bool
	bufferSize      int
	maxTransfers    int64
	idleTimeout     time.Duration
	atomicUpload    bool
	metricsEnabled  bool
}

type Option func(c *config)

func WithRoot(root string) Option {
	return func(c *config) {
		c.root = root
	}
}

func WithURLPrefix(prefix string) Option {
	return func(c *config) {
		c.urlPrefix = prefix
	}
}

// WithBrowsePrefix 为空时关闭browse模式
func WithBrowsePrefix(prefix string) Option {
	return func(c *config) {
		c.browsePrefix = prefix
	}
}

func WithFileStore(st filestore.IFileStore) Option {
	return func(c *config) {
		c.store = st
	}
}

func WithAuth(a auth.IAuth) Option {
	return func(c *config) {
		c.auth = a
	}
}

// WithUser 用户名为空时不开启认证
func WithUser(user, password string) Option {
	return func(c *config) {
		if len(user) == 0 {
			c.auth = auth.NewNoAuth()
			return
		}
		c.auth = auth.NewBasicAuth(user, password, auth.DefaultRealm)
	}
}

func WithDownloadEnabled(v bool) Option {
	return func(c *config) {
		c.downloadEnabled = v
	}
}

func WithUploadEnabled(v bool) Option {
	return func(c *config) {
		c.uploadEnabled = v
	}
}

func WithDeletionEnabled(v bool) Option {
	return func(c *config) {
		c.deletionEnabled = v
	}
}

func WithBufferSize(sz int) Option {
	return func(c *config) {
		c.bufferSize = sz
	}
}

func WithMaxTransfers(n int64) Option {
	return func(c *config) {
		c.maxTransfers = n
	}
}

// WithUploadIdleTimeout 上传时客户端无数据超过d即中断, 0表示不限制
func WithUploadIdleTimeout(d time.Duration) Option {
	return func(c *config) {
		c.idleTimeout = d
	}
}

func WithAtomicUpload(v bool) Option {
	return func(c *config) {
		c.atomicUpload = v
	}
}

func WithMetricsEnabled(v bool) Option {
	return func(c *config) {
		c.metricsEnabled = v
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		root:            defaultRoot,
		urlPrefix:       defaultURLPrefix,
		browsePrefix:    defaultBrowsePrefix,
		downloadEnabled: true,
		uploadEnabled:   true,
		deletionEnabled: true,
		bufferSize:      defaultBufferSize,
		maxTransfers:    defaultMaxTransfers,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = filestore.NewOSStore()
	}
	if c.auth == nil {
		c.auth = auth.NewNoAuth()
	}
	if c.bufferSize <= 0 {
		c.bufferSize = defaultBufferSize
	}
	if c.maxTransfers <= 0 {
		c.maxTransfers = defaultMaxTransfers
	}
	return c
}
