package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type mkdirArgs struct {
	dir string
}

func NewMkdirCmd(c *Context) *cobra.Command {
	args := &mkdirArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "mkdir",
		Short: "Create a remote directory and its parents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(args.dir) == 0 {
				return fmt.Errorf("no remote dir found")
			}
			return c.DAVC.MkdirAll(ctx, args.dir)
		},
	}
	subc.PersistentFlags().StringVarP(&args.dir, "dir", "d", "", "remote directory")
	return subc
}

func init() {
	register(NewMkdirCmd)
}
