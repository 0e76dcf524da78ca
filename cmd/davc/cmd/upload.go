package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/sdwebdav/davc"
	"go.uber.org/zap"
)

type uploadArgs struct {
	files  []string
	dir    string
	resume bool
}

func NewUploadCmd(c *Context) *cobra.Command {
	args := &uploadArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "upload",
		Short: "Upload files to a remote directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunUpload(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringSliceVarP(&args.files, "file", "f", nil, "local files to upload")
	subc.PersistentFlags().StringVarP(&args.dir, "dir", "d", "/", "remote directory")
	subc.PersistentFlags().BoolVar(&args.resume, "resume", false, "continue from the size of an existing remote file")
	return subc
}

func onRunUpload(ctx context.Context, c *Context, args *uploadArgs) error {
	if len(args.files) == 0 {
		return fmt.Errorf("no upload file found")
	}
	start := time.Now()
	cli := c.DAVC
	if args.resume {
		cli = c.DAVC.With(davc.WithResume(true))
	}
	if err := cli.UploadFiles(ctx, args.files, args.dir); err != nil {
		return fmt.Errorf("upload file failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("upload file succ", zap.Int("count", len(args.files)), zap.String("dir", args.dir), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewUploadCmd)
}
