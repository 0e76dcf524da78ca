package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/metrics"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/handler"
	"github.com/xxxsen/sdwebdav/server/handler/browse"
	"github.com/xxxsen/sdwebdav/server/handler/webdav"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/server/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	metricsPath              = "/metrics"
	defaultReadHeaderTimeout = 10 * time.Second
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type Server struct {
	c      *config
	bind   string
	engine *gin.Engine
	svr    *http.Server
	sem    *semaphore.Weighted
	m      *metrics.Metrics
}

func New(bind string, opts ...Option) (*Server, error) {
	c := applyOpts(opts...)
	c.root = pathutil.NormalizeRoot(c.root)
	c.urlPrefix = pathutil.NormalizePrefix(c.urlPrefix)
	c.browsePrefix = pathutil.NormalizePrefix(c.browsePrefix)
	if err := checkPrefix(c); err != nil {
		return nil, err
	}
	svr := &Server{
		c:    c,
		bind: bind,
		sem:  semaphore.NewWeighted(c.maxTransfers),
	}
	if c.metricsEnabled {
		svr.m = metrics.New()
	}
	svr.engine = gin.New()
	svr.engine.RedirectTrailingSlash = false
	svr.engine.RedirectFixedPath = false
	svr.engine.HandleMethodNotAllowed = true
	svr.engine.Use(gin.Recovery(), middleware.AccessLogMiddleware(svr.m))
	svr.initAPI(svr.engine)
	svr.svr = &http.Server{
		Addr:              bind,
		Handler:           svr,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}
	return svr, nil
}

// checkPrefix webdav与browse使用同一个root, 但url前缀不能互相包含
func checkPrefix(c *config) error {
	if len(c.urlPrefix) == 0 && (len(c.browsePrefix) > 0 || c.metricsEnabled) {
		return fmt.Errorf("empty url prefix can not be used with browse mode or metrics")
	}
	if len(c.browsePrefix) > 0 && (pathutil.IsWithin(c.urlPrefix, c.browsePrefix) || pathutil.IsWithin(c.browsePrefix, c.urlPrefix)) {
		return fmt.Errorf("url prefix:%s overlaps browse prefix:%s", c.urlPrefix, c.browsePrefix)
	}
	if c.metricsEnabled && (c.urlPrefix == metricsPath || c.browsePrefix == metricsPath) {
		return fmt.Errorf("prefix conflicts with metrics path:%s", metricsPath)
	}
	return nil
}

func (s *Server) handlerConfig() *handler.Config {
	return &handler.Config{
		Store:           s.c.store,
		Root:            s.c.root,
		Prefix:          s.c.urlPrefix,
		BrowsePrefix:    s.c.browsePrefix,
		DownloadEnabled: s.c.downloadEnabled,
		UploadEnabled:   s.c.uploadEnabled,
		DeletionEnabled: s.c.deletionEnabled,
		BufferSize:      s.c.bufferSize,
		IdleTimeout:     s.c.idleTimeout,
		AtomicUpload:    s.c.atomicUpload,
		Metrics:         s.m,
	}
}

func handleAll(router gin.IRoutes, prefix string, methods []string, fn gin.HandlerFunc) {
	for _, method := range methods {
		if len(prefix) > 0 {
			router.Handle(method, prefix, fn)
		}
		router.Handle(method, prefix+"/*all", fn)
	}
}

func (s *Server) initAPI(engine *gin.Engine) {
	engine.NoRoute(func(c *gin.Context) {
		httpkit.FailJSON(c, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	engine.NoMethod(func(c *gin.Context) {
		httpkit.FailJSON(c, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	if s.c.metricsEnabled {
		engine.GET(metricsPath, gin.WrapH(s.m.Handler()))
	}
	mustAuthMiddleware := middleware.MustAuthMiddleware(s.c.auth)
	hc := s.handlerConfig()

	webdavRouter := engine.Group("", mustAuthMiddleware,
		middleware.TransferLimitMiddleware(s.sem, s.m, webdav.TransferMethods...))
	{
		webdavHandler := webdav.NewWebdavHandler(hc)
		handleAll(webdavRouter, s.c.urlPrefix, webdav.AllowMethods, webdavHandler.Handler)
	}
	if hc.BrowseEnabled() {
		browseRouter := engine.Group("", mustAuthMiddleware,
			middleware.TransferLimitMiddleware(s.sem, s.m, http.MethodGet, http.MethodPost))
		browseHandler := browse.NewBrowseHandler(hc)
		handleAll(browseRouter, s.c.browsePrefix, []string{http.MethodGet}, browseHandler.HandleGet)
		handleAll(browseRouter, s.c.browsePrefix, []string{http.MethodPost}, browseHandler.HandleUpload)
		handleAll(browseRouter, s.c.browsePrefix, []string{http.MethodDelete}, browseHandler.HandleDelete)
	}
}

// ServeHTTP 在请求上下文中保留原始ResponseWriter, 上传时需要通过它调整读超时
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(httpkit.WithResponseWriter(r.Context(), w))
	s.engine.ServeHTTP(w, r)
}

func (s *Server) Handler() http.Handler {
	return s
}

func (s *Server) logStartup(addr string) {
	logutil.GetLogger(context.Background()).Info("server start",
		zap.String("addr", addr),
		zap.String("root", s.c.root),
		zap.String("url_prefix", s.c.urlPrefix),
		zap.String("browse_prefix", s.c.browsePrefix),
		zap.String("auth", s.c.auth.Name()),
		zap.Bool("download", s.c.downloadEnabled),
		zap.Bool("upload", s.c.uploadEnabled),
		zap.Bool("deletion", s.c.deletionEnabled),
		zap.String("buffer_size", humanize.IBytes(uint64(s.c.bufferSize))),
		zap.Int64("max_transfers", s.c.maxTransfers),
		zap.Duration("upload_idle_timeout", s.c.idleTimeout),
		zap.Bool("atomic_upload", s.c.atomicUpload),
		zap.Bool("metrics", s.c.metricsEnabled),
	)
}

func (s *Server) Run() error {
	l, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen on %s failed, err:%w", s.bind, err)
	}
	return s.Serve(l)
}

func (s *Server) Serve(l net.Listener) error {
	s.logStartup(l.Addr().String())
	if err := s.svr.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.svr.Shutdown(ctx)
}
