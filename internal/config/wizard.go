package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard asks for the settings a new deployment needs, saves them to path
// and returns the resulting Config.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to kaftar! Let's configure the site.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Content API.
	apiPrompt := promptui.Prompt{
		Label:    "Content API base URL",
		Default:  defaults.APIBaseURL,
		Validate: validateURL,
	}
	apiBase, err := apiPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api base url: %w", err)
	}

	// 2. Environment.
	envPrompt := promptui.Select{
		Label: "Select environment",
		Items: []string{
			"development - console logs",
			"production  - JSON logs",
		},
	}
	envIdx, _, err := envPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("environment selection: %w", err)
	}
	environment := []Environment{EnvDevelopment, EnvProduction}[envIdx]

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(defaults.Port),
		Validate: validatePositive,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 4. Page size.
	sizePrompt := promptui.Prompt{
		Label:    "Rows per page in admin lists",
		Default:  strconv.Itoa(defaults.PageSize),
		Validate: validatePositive,
	}
	sizeStr, err := sizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("page size: %w", err)
	}
	pageSize, _ := strconv.Atoi(sizeStr)

	// 5. CORS origins.
	originsPrompt := promptui.Prompt{
		Label:   "Allowed origins (comma-separated)",
		Default: "*",
	}
	originsStr, err := originsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("allowed origins: %w", err)
	}

	cfg := defaults
	cfg.APIBaseURL = apiBase
	cfg.Environment = environment
	cfg.Port = port
	cfg.PageSize = pageSize
	cfg.AllowedOrigins = splitAndTrim(originsStr)
	if environment == EnvProduction {
		cfg.LogLevel = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("enter an http:// or https:// URL")
	}
	return nil
}

func validatePositive(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}
