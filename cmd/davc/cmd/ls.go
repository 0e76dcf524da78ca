package cmd

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type lsArgs struct {
	dir string
}

func NewLsCmd(c *Context) *cobra.Command {
	args := &lsArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "ls",
		Short: "List a remote directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunLs(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.dir, "dir", "d", "/", "remote directory")
	return subc
}

func onRunLs(ctx context.Context, c *Context, args *lsArgs) error {
	items, err := c.DAVC.List(ctx, args.dir)
	if err != nil {
		return fmt.Errorf("list dir failed, err:%w", err)
	}
	for _, item := range items {
		size := "-"
		name := path.Base(item.Path)
		if item.IsDir {
			name += "/"
		} else {
			size = humanize.IBytes(uint64(item.Size))
		}
		fmt.Fprintf(os.Stdout, "%-10s %-20s %s\n", size, item.ModTime.Local().Format("2006-01-02 15:04:05"), name)
	}
	return nil
}

func init() {
	register(NewLsCmd)
}
