package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/sdwebdav/config"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/server"
	"go.uber.org/zap"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultConfigFileEnv   = "SDWEBDAV_CONFIG"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		log.Printf("exec cmd failed, err:%v", err)
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	var configFile string
	var check bool
	rootCmd := &cobra.Command{
		Use:   "sdwebdav",
		Short: "Serve a local directory over WebDAV and a browser file manager",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
			c, err := loadConfig([]string{configFile, envConfigFile, "./config.json", "/etc/sdwebdav/config.json"})
			if err != nil {
				return err
			}
			run(c, check)
			return nil
		},
	}
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.Flags().BoolVar(&check, "check", false, "validate config file and exit")
	return rootCmd
}

func loadConfig(cfgs []string) (*config.Config, error) {
	var err error
	for _, cfg := range cfgs {
		if len(cfg) == 0 {
			continue
		}
		var c *config.Config
		c, err = config.Parse(cfg)
		if err == nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no valid config file found, last err:%w", err)
}

func run(c *config.Config, check bool) {
	logitem := c.LogInfo
	logger := logger.Init(logitem.File, logitem.Level, int(logitem.FileCount), int(logitem.FileSize), int(logitem.KeepDays), logitem.Console)
	cfgToLog := *c
	cfgToLog.Password = "******"
	logger.Info("recv config", zap.Any("config", cfgToLog))
	if check {
		logger.Info("config check succ")
		return
	}
	if _, err := os.Stat(c.RootPath); err != nil {
		logger.Fatal("root path not ready", zap.String("root", c.RootPath), zap.Error(err))
	}
	svr, err := server.New(c.Bind(), buildServerOptions(c)...)
	if err != nil {
		logger.Fatal("init server fail", zap.Error(err))
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		logger.Info("recv stop signal, shutdown server...")
		sctx, scancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer scancel()
		if err := svr.Shutdown(sctx); err != nil {
			logger.Error("shutdown server failed", zap.Error(err))
		}
	}()
	logger.Info("init server succ, start it...")
	if err := svr.Run(); err != nil {
		logger.Fatal("run server fail", zap.Error(err))
	}
	logger.Info("server exit")
}

func buildServerOptions(c *config.Config) []server.Option {
	opts := []server.Option{
		server.WithRoot(c.RootPath),
		server.WithURLPrefix(c.URLPrefix),
		server.WithBrowsePrefix(c.BrowsePrefix),
		server.WithFileStore(filestore.NewOSStore()),
		server.WithDownloadEnabled(c.DownloadEnabled),
		server.WithUploadEnabled(c.UploadEnabled),
		server.WithDeletionEnabled(c.DeletionEnabled),
		server.WithBufferSize(c.BufferSize),
		server.WithMaxTransfers(c.MaxTransfers),
		server.WithUploadIdleTimeout(time.Duration(c.UploadIdleTimeout) * time.Second),
		server.WithAtomicUpload(c.AtomicUpload),
		server.WithMetricsEnabled(c.MetricsEnabled),
	}
	if c.AuthActive() {
		opts = append(opts, server.WithUser(c.Username, c.Password))
	}
	return opts
}
