package cmd

import (
	"fmt"
	"os"
	"time"

	"dmpublish/internal/app"
	"dmpublish/internal/dailymotion"
	"dmpublish/pkg/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	authInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	authSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	authErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var authManageVideos bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect and test Dailymotion credentials",
	Long:  `Check configured credentials or request an access token using credentials from .env`,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check which credentials are configured",
	Long:  `Report which Dailymotion credentials and optional settings are configured, without contacting the API.`,
	RunE:  runAuthStatus,
}

var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Request an access token",
	Long:  `Request an OAuth access token with the password grant and print it.`,
	RunE:  runAuthToken,
}

func init() {
	authTokenCmd.Flags().BoolVar(&authManageVideos, "manage-videos", false, "Request the manage_videos scope")
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authTokenCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println(authInfoStyle.Render("\nDailymotion Credentials:\n"))

	missing := make(map[string]bool)
	for _, key := range cfg.MissingCredentials() {
		missing[key] = true
	}

	for _, key := range []string{
		"DAILYMOTION_USERNAME",
		"DAILYMOTION_PASSWORD",
		"DAILYMOTION_API_KEY",
		"DAILYMOTION_API_SECRET",
	} {
		if missing[key] {
			fmt.Println(authErrorStyle.Render("✗ " + key + ": missing"))
		} else {
			fmt.Println(authSuccessStyle.Render("✓ " + key + ": configured"))
		}
	}

	if cfg.ProxyURL != "" {
		fmt.Println(authSuccessStyle.Render("✓ Proxy: " + cfg.ProxyURL))
	} else {
		fmt.Println(authInfoStyle.Render("○ Proxy: not configured (optional)"))
	}

	if cfg.GCPProject != "" {
		fmt.Println(authSuccessStyle.Render("✓ Google Cloud: " + cfg.GCPProject + " (Secret Manager, Cloud Storage)"))
	} else {
		fmt.Println(authInfoStyle.Render("○ Google Cloud: not configured (optional)"))
	}

	if len(missing) > 0 {
		fmt.Println(authInfoStyle.Render("\n  Run: dmpublish setup"))
	}

	fmt.Println()
	return nil
}

func runAuthToken(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()

	pipeline := app.NewPipeline(service)

	var token string
	if err := runWithSpinner("Requesting access token", func() error {
		var err error
		token, err = pipeline.Authenticate(ctx, authManageVideos)
		return err
	}); err != nil {
		return err
	}

	out := map[string]any{"access_token": token}
	if client, ok := service.API().(*dailymotion.Client); ok && client.Token() != nil {
		if expiry := client.Token().Expiry; !expiry.IsZero() {
			out["expiry"] = expiry.Format(time.RFC3339)
		}
		if scope, ok := client.Token().Extra("scope").(string); ok && scope != "" {
			out["scope"] = scope
		}
	}

	return printObject(os.Stdout, resolveOutputFormat(service.Config()), out)
}
