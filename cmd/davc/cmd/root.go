package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/sdwebdav/cmd/davc/config"
	"github.com/xxxsen/sdwebdav/davc"
	"github.com/xxxsen/sdwebdav/davc/client"
)

const (
	defaultConfigFileEnv = "DAVC_CONFIG"
)

var cmds []CreateFunc

type Context struct {
	DAVC   *davc.DavClient
	Config *config.Config
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func initContext(ctx *Context, cfgs []string) error {
	var c *config.Config
	var err error
	for _, cfg := range cfgs {
		if len(cfg) == 0 {
			continue
		}
		c, err = config.Parse(cfg)
		if err == nil {
			break
		}
	}
	if c == nil {
		return fmt.Errorf("no valid config file found, last err:%w", err)
	}
	ctx.Config = c
	logger.Init("", c.LogLevel, 0, 0, 0, true)
	cli, err := client.New(
		client.WithSchema(c.Schema),
		client.WithHost(c.Host),
		client.WithPrefix(c.Prefix),
		client.WithAuth(c.Username, c.Password),
		client.WithTimeout(time.Duration(c.Timeout)*time.Second),
	)
	if err != nil {
		return err
	}
	ctx.DAVC = davc.New(davc.WithClient(cli), davc.WithThread(c.Thread), davc.WithPartSize(c.PartSize))
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:   "davc",
		Short: "SD card webdav CLI tool",
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
		return initContext(ctx, []string{configFile, envConfigFile, "/etc/davc/davc_config.json"})
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	return rootCmd
}
