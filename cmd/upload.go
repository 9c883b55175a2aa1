package cmd

import (
	"log/slog"
	"os"

	"dmpublish/internal/app"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	uploadTitle       string
	uploadDescription string
	uploadChannel     string
	uploadTags        []string
	uploadPrivate     bool
	uploadQuiet       bool
	uploadOpen        bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path|gs://bucket/object>...",
	Short: "Upload and publish videos",
	Long: `Upload one or more videos and publish them on Dailymotion.
Directories and gs:// prefixes ending in "/" are expanded to the videos they contain.
Missing title, description and tags are rendered from templates.yaml.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "Video title")
	uploadCmd.Flags().StringVarP(&uploadDescription, "description", "d", "", "Video description")
	uploadCmd.Flags().StringVarP(&uploadChannel, "channel", "c", "", "Dailymotion channel (default from config)")
	uploadCmd.Flags().StringSliceVar(&uploadTags, "tags", nil, "Comma-separated tags")
	uploadCmd.Flags().BoolVar(&uploadPrivate, "private", false, "Publish as private")
	uploadCmd.Flags().BoolVarP(&uploadQuiet, "quiet", "q", false, "Hide the progress bar")
	uploadCmd.Flags().BoolVar(&uploadOpen, "open", false, "Open published videos in the browser")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()

	pipeline := app.NewPipeline(service)

	slog.Info("Authenticating...")
	if _, err := pipeline.Authenticate(ctx, false); err != nil {
		return err
	}

	results, err := pipeline.PublishAll(ctx, args, app.PublishRequest{
		Title:       uploadTitle,
		Description: uploadDescription,
		Channel:     uploadChannel,
		Tags:        uploadTags,
		Private:     uploadPrivate,
		Quiet:       uploadQuiet,
	})
	if len(results) > 0 {
		if printErr := printObject(os.Stdout, resolveOutputFormat(service.Config()), results); printErr != nil {
			return printErr
		}
	}
	if err != nil {
		return err
	}

	if uploadOpen {
		for _, result := range results {
			if result.URL == "" {
				continue
			}
			if err := browser.OpenURL(result.URL); err != nil {
				slog.Warn("Failed to open browser", "url", result.URL, "error", err)
			}
		}
	}

	return nil
}
