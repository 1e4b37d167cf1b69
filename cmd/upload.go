package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/upload"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func uploadCmd() *cobra.Command {
	var dir, runID string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Publish the files of an output directory to S3",
		Long: `Upload every regular file directly inside --dir to the bucket configured under
upload.s3, keyed as <prefix>/<run id>/<file name>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var s3cfg config.S3UploadConfig
			if err := vConfig.UnmarshalKey("upload.s3", &s3cfg); err != nil {
				return fmt.Errorf("failed to decode upload configuration: %w", err)
			}

			files, err := listFiles(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files to upload in %s", dir)
			}

			if runID == "" {
				abs, err := filepath.Abs(dir)
				if err != nil {
					return fmt.Errorf("failed to resolve %s: %w", dir, err)
				}
				runID = filepath.Base(abs)
			}

			uploader, err := upload.NewS3Uploader(&s3cfg)
			if err != nil {
				return fmt.Errorf("failed to create uploader: %w", err)
			}
			if err := uploader.Preflight(cmd.Context()); err != nil {
				return fmt.Errorf("upload preflight failed: %w", err)
			}

			keys, err := uploader.Upload(cmd.Context(), runID, files)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			log.Info().Str("dir", dir).Str("run", runID).Int("files", len(keys)).Msg("Outputs published")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding the files to publish")
	cmd.Flags().StringVar(&runID, "run-id", "", "Key segment for the uploaded files (defaults to the directory name)")

	return cmd
}

// listFiles returns the regular files directly inside dir.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
