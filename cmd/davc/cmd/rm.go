package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type rmArgs struct {
	file string
}

func NewRmCmd(c *Context) *cobra.Command {
	args := &rmArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "rm",
		Short: "Remove a remote file or directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(args.file) == 0 {
				return fmt.Errorf("no remote file found")
			}
			return c.DAVC.Remove(ctx, args.file)
		},
	}
	subc.PersistentFlags().StringVarP(&args.file, "file", "f", "", "remote path")
	return subc
}

func init() {
	register(NewRmCmd)
}
