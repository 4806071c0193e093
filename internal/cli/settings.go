package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/racewatch/racewatch/internal/config"
	"github.com/racewatch/racewatch/internal/models"
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config"},
	Short:   "Configure racewatch settings",
	Long: `Configure racewatch settings interactively.

This allows you to modify:
  - Location provider (ip-api, static, none) and its options
  - History storage
  - Log level

Press Enter to keep the current value for any setting.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

// settingPrompt is one question asked by configure.
type settingPrompt struct {
	label   string
	key     string
	current func(*models.Settings) string
	// when reports whether the prompt applies to the settings so far.
	when func(*models.Settings) bool
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var configurePrompts = []settingPrompt{
	{
		label:   "Location provider (ip-api, static, none)",
		key:     config.SettingProvider,
		current: func(s *models.Settings) string { return s.Locator.Provider },
	},
	{
		label:   "Lookup endpoint",
		key:     config.SettingEndpoint,
		current: func(s *models.Settings) string { return s.Locator.Endpoint },
		when:    func(s *models.Settings) bool { return s.Locator.Provider == models.LocatorIPAPI },
	},
	{
		label:   "Lookup timeout",
		key:     config.SettingTimeout,
		current: func(s *models.Settings) string { return s.Locator.Timeout.String() },
		when:    func(s *models.Settings) bool { return s.Locator.Provider == models.LocatorIPAPI },
	},
	{
		label:   "Latitude",
		key:     config.SettingLatitude,
		current: func(s *models.Settings) string { return formatFloat(s.Locator.Latitude) },
		when:    func(s *models.Settings) bool { return s.Locator.Provider == models.LocatorStatic },
	},
	{
		label:   "Longitude",
		key:     config.SettingLongitude,
		current: func(s *models.Settings) string { return formatFloat(s.Locator.Longitude) },
		when:    func(s *models.Settings) bool { return s.Locator.Provider == models.LocatorStatic },
	},
	{
		label:   "Keep history between runs (true/false)",
		key:     config.SettingStorage,
		current: func(s *models.Settings) string { return strconv.FormatBool(s.Storage.Enabled) },
	},
	{
		label:   "Log level",
		key:     config.SettingLogLevel,
		current: func(s *models.Settings) string { return s.Logging.Level },
	},
}

func runConfigure(cmd *cobra.Command, args []string) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create racewatch directory: %w", err)
	}
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	updated, changed, err := promptSettings(bufio.NewReader(cmd.InOrStdin()), out, settings)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(out, "\nNo changes made.")
		return nil
	}

	if err := config.SaveSettings(updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(out, styleSuccess.Render("\nSettings updated."))
	return nil
}

// promptSettings walks configurePrompts. An empty answer keeps the current
// value; an invalid one aborts without saving.
func promptSettings(reader *bufio.Reader, out io.Writer, settings *models.Settings) (*models.Settings, bool, error) {
	changed := false
	for _, p := range configurePrompts {
		if p.when != nil && !p.when(settings) {
			continue
		}
		current := p.current(settings)
		fmt.Fprintf(out, "%s [%s]: ", p.label, current)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(answer)
		if answer == "" || answer == current {
			continue
		}

		next, err := config.ApplySetting(settings, p.key, answer)
		if err != nil {
			return nil, false, err
		}
		settings = next
		changed = true
	}
	return settings, changed, nil
}
