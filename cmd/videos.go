package cmd

import (
	"errors"
	"os"

	"dmpublish/internal/app"

	"github.com/spf13/cobra"
)

var videoFields string

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List, inspect and delete videos",
}

var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the authenticated user's videos",
	Args:  cobra.NoArgs,
	RunE:  runVideosList,
}

var videosGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideosGet,
}

var videosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a video",
	Long:  `Delete one of the authenticated user's videos. Requests a token with the manage_videos scope.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runVideosDelete,
}

func init() {
	videosListCmd.Flags().StringVar(&videoFields, "fields", "", "Comma-separated fields to return (default from config)")
	videosGetCmd.Flags().StringVar(&videoFields, "fields", "", "Comma-separated fields to return (default from config)")
	videosCmd.AddCommand(videosListCmd)
	videosCmd.AddCommand(videosGetCmd)
	videosCmd.AddCommand(videosDeleteCmd)
	rootCmd.AddCommand(videosCmd)
}

// fieldsFlag returns the --fields value when set, even if empty, and
// fallback otherwise.
func fieldsFlag(cmd *cobra.Command, fallback string) string {
	if cmd.Flags().Changed("fields") {
		return videoFields
	}
	return fallback
}

func runVideosList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()

	if _, err := app.NewPipeline(service).Authenticate(ctx, false); err != nil {
		return err
	}

	videos, err := service.API().GetAuthenticatedUserVideos(ctx, fieldsFlag(cmd, service.Config().Fields.Videos))
	if err != nil {
		return err
	}

	return printObject(os.Stdout, resolveOutputFormat(service.Config()), videos)
}

func runVideosGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()

	video, err := service.API().GetVideo(ctx, args[0], fieldsFlag(cmd, service.Config().Fields.Video))
	if err != nil {
		return err
	}

	return printObject(os.Stdout, resolveOutputFormat(service.Config()), video)
}

func runVideosDelete(cmd *cobra.Command, args []string) error {
	if args[0] == "" {
		return errors.New("video id is required")
	}

	ctx := cmd.Context()

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()

	if _, err := app.NewPipeline(service).Authenticate(ctx, true); err != nil {
		return err
	}

	result, err := service.API().DeleteVideo(ctx, args[0])
	if err != nil {
		return err
	}

	return printObject(os.Stdout, resolveOutputFormat(service.Config()), result)
}
