package cli

import (
	"fmt"
	"strings"

	"github.com/samuelgthorpe/sampy/internal/s3"
	"github.com/spf13/cobra"
)

var s3IgnoreExts []string

func init() {
	s3PushCmd.Flags().StringSliceVar(&s3IgnoreExts, "ignore-ext", nil, "File extensions to skip, e.g. .pkl")
	s3Cmd.AddCommand(s3PullCmd)
	s3Cmd.AddCommand(s3PushCmd)
	rootCmd.AddCommand(s3Cmd)
}

var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "Pull and push data between local directories and S3",
}

var s3PullCmd = &cobra.Command{
	Use:   "pull <s3://bucket/path> <local-dir>",
	Short: "Pull an object or prefix from S3",
	Long: `Pull a single object, or every object under a prefix, into a local
directory. Paths ending in "/" are treated as prefixes.

Examples:
  sampy s3 pull s3://my-bucket/runs/model.json .
  sampy s3 pull s3://my-bucket/runs/ ./runs`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := s3.NewClient(cmd.Context())
		if err != nil {
			return err
		}

		s3Path, localDir := args[0], args[1]
		if strings.HasSuffix(s3Path, "/") {
			files, err := client.PullPrefix(cmd.Context(), strings.TrimSuffix(s3Path, "/"), localDir)
			if err != nil {
				return err
			}
			fmt.Printf("Pulled %d files to %s\n", len(files), localDir)
			return nil
		}

		local, err := client.PullFile(cmd.Context(), s3Path, localDir)
		if err != nil {
			return err
		}
		fmt.Printf("Pulled %s\n", local)
		return nil
	},
}

var s3PushCmd = &cobra.Command{
	Use:   "push <local-dir> <s3://bucket/prefix>",
	Short: "Push a local directory to S3",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := s3.NewClient(cmd.Context())
		if err != nil {
			return err
		}

		bucket, prefix, err := s3.SplitPath(strings.TrimSuffix(args[1], "/"))
		if err != nil {
			return err
		}
		return client.PushDir(cmd.Context(), args[0], bucket, prefix, s3.PushOptions{IgnoreExts: s3IgnoreExts})
	},
}
