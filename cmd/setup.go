package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"dmpublish/pkg/templates"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

const (
	envPath       = ".env"
	templatesPath = "templates.yaml"
)

var envOrder = []string{
	"DAILYMOTION_USERNAME",
	"DAILYMOTION_PASSWORD",
	"DAILYMOTION_API_KEY",
	"DAILYMOTION_API_SECRET",
	"DAILYMOTION_PROXY",
	"GOOGLE_CLOUD_PROJECT",
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for dmpublish",
	Long:  `Configure Dailymotion credentials and write .env and templates.yaml in the current directory.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("🎬 dmpublish Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Configuring environment", configureEnv},
		{"Creating metadata templates", createTemplates},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	printNextSteps()
	return nil
}

func configureEnv() error {
	if ok, err := confirmOverwrite(envPath); err != nil || !ok {
		return err
	}

	env := make(map[string]string)

	if err := configureCredentials(env); err != nil {
		return err
	}

	if err := configureOptional(env); err != nil {
		return err
	}

	f, err := os.OpenFile(envPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := writeEnv(f, env); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	return nil
}

func configureCredentials(env map[string]string) error {
	var username, password, apiKey, apiSecret string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dailymotion username").
				Value(&username).
				Validate(required("Username")),
			huh.NewInput().
				Title("Dailymotion password").
				Description("Leave empty to read dailymotion-password from Secret Manager").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("API key").
				Description("https://www.dailymotion.com/partner/api-keys").
				Value(&apiKey).
				Validate(required("API key")),
			huh.NewInput().
				Title("API secret").
				Description("Leave empty to read dailymotion-api-secret from Secret Manager").
				EchoMode(huh.EchoModePassword).
				Value(&apiSecret),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	env["DAILYMOTION_USERNAME"] = strings.TrimSpace(username)
	env["DAILYMOTION_PASSWORD"] = strings.TrimSpace(password)
	env["DAILYMOTION_API_KEY"] = strings.TrimSpace(apiKey)
	env["DAILYMOTION_API_SECRET"] = strings.TrimSpace(apiSecret)
	return nil
}

func configureOptional(env map[string]string) error {
	proxyURL := ""
	project := getActiveProject()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Proxy URL (optional)").
				Description("http://, https:// or socks5:// proxy for all API traffic").
				Value(&proxyURL),
			huh.NewInput().
				Title("Google Cloud project (optional)").
				Description("Enables Secret Manager fallbacks and gs:// uploads").
				Value(&project),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	env["DAILYMOTION_PROXY"] = strings.TrimSpace(proxyURL)
	env["GOOGLE_CLOUD_PROJECT"] = strings.TrimSpace(project)
	return nil
}

func createTemplates() error {
	if ok, err := confirmOverwrite(templatesPath); err != nil || !ok {
		return err
	}

	tmpl := templates.Default()
	tmpl.Description = "Uploaded on {{.Date}}"

	if err := tmpl.Save(templatesPath); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Created " + templatesPath))
	return nil
}

// writeEnv writes the non-empty values of env in a stable order.
func writeEnv(w io.Writer, env map[string]string) error {
	for _, key := range envOrder {
		if val, ok := env[key]; ok && val != "" {
			if _, err := fmt.Fprintf(w, "%s=%s\n", key, val); err != nil {
				return err
			}
		}
	}
	return nil
}

func confirmOverwrite(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return true, nil
	}

	var overwrite bool
	if err := huh.NewConfirm().
		Title("Found existing " + path).
		Description("Overwrite?").
		Value(&overwrite).
		Run(); err != nil {
		return false, err
	}
	if !overwrite {
		fmt.Println(infoStyle.Render("Kept existing " + path))
	}
	return overwrite, nil
}

func getActiveProject() string {
	if _, err := exec.LookPath("gcloud"); err != nil {
		return ""
	}

	out, err := exec.Command("gcloud", "config", "get-value", "project").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Check credentials: dmpublish auth status")
	fmt.Println("  2. Edit metadata templates in: " + templatesPath)
	fmt.Println("  3. Run: dmpublish upload ./video.mp4")
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stderr, successStyle.Render("✓ "+title))
	return nil
}
