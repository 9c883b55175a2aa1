package cmd

import (
	"os"

	"dmpublish/internal/app"

	"github.com/spf13/cobra"
)

var meFields string

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	Long:  `Show the authenticated user's profile. Pass --fields "" to get the API's default field set.`,
	Args:  cobra.NoArgs,
	RunE:  runMe,
}

func init() {
	meCmd.Flags().StringVar(&meFields, "fields", "", "Comma-separated fields to return (default from config)")
	rootCmd.AddCommand(meCmd)
}

func runMe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()

	if _, err := app.NewPipeline(service).Authenticate(ctx, false); err != nil {
		return err
	}

	fields := service.Config().Fields.User
	if cmd.Flags().Changed("fields") {
		fields = meFields
	}

	user, err := service.API().GetAuthenticatedUserInfo(ctx, fields)
	if err != nil {
		return err
	}

	return printObject(os.Stdout, resolveOutputFormat(service.Config()), user)
}
