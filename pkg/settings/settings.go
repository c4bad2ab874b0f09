// Package settings is the slicer's formatting model: calendar behavior and
// appearance colors, loaded from .dateslicer.yaml and DATESLICER_* env.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/shell"
)

// Default appearance colors.
const (
	DefaultAccent     = "#00539A"
	DefaultBackground = "#FFFFFF"
	DefaultText       = "#11284C"
	DefaultBorder     = "#D9E1EA"
)

// NoPreset disables the default preset.
const NoPreset = "none"

// Appearance holds the four theme colors as hex strings.
type Appearance struct {
	Accent     string `json:"accentColor"`
	Background string `json:"backgroundColor"`
	Text       string `json:"textColor"`
	Border     string `json:"borderColor"`
}

// Calendar holds the behavioral settings.
type Calendar struct {
	FirstDayOfWeek time.Weekday
	ShowSidebar    bool
	// DefaultPreset is applied on first load when no filter is restored.
	// Empty means none.
	DefaultPreset dates.Preset
	DisplayMode   shell.DisplayMode
}

// Settings is the loaded configuration.
type Settings struct {
	Calendar   Calendar
	Appearance Appearance
	Path       string
	LogLevel   string
	LogFile    string
}

// BasePath implements store.Config.
func (s *Settings) BasePath() string { return s.Path }

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Calendar: Calendar{
			FirstDayOfWeek: time.Sunday,
			ShowSidebar:    true,
			DisplayMode:    shell.Expanded,
		},
		Appearance: Appearance{
			Accent:     DefaultAccent,
			Background: DefaultBackground,
			Text:       DefaultText,
			Border:     DefaultBorder,
		},
		Path:     "~/.dateslicer",
		LogLevel: "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("path", d.Path)
	v.SetDefault("calendar.firstDayOfWeek", "sunday")
	v.SetDefault("calendar.showSidebar", d.Calendar.ShowSidebar)
	v.SetDefault("calendar.defaultPreset", NoPreset)
	v.SetDefault("calendar.displayMode", d.Calendar.DisplayMode.String())
	v.SetDefault("appearance.accentColor", d.Appearance.Accent)
	v.SetDefault("appearance.backgroundColor", d.Appearance.Background)
	v.SetDefault("appearance.textColor", d.Appearance.Text)
	v.SetDefault("appearance.borderColor", d.Appearance.Border)
	v.SetDefault("log.level", d.LogLevel)
	v.SetDefault("log.file", "")
}

// Load reads .dateslicer.yaml from $DATESLICER_CONFIG_PATH, the working
// directory or $HOME. A missing file is not an error.
func Load() (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".dateslicer") // .yaml is implicit
	v.SetEnvPrefix("DATESLICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("DATESLICER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes settings from an already-populated viper instance.
func FromViper(v *viper.Viper) (*Settings, error) {
	setDefaults(v)
	s := Default()

	fd, ok := ParseFirstDay(v.GetString("calendar.firstDayOfWeek"))
	if !ok {
		return nil, fmt.Errorf("calendar.firstDayOfWeek: unsupported value %q", v.GetString("calendar.firstDayOfWeek"))
	}
	s.Calendar.FirstDayOfWeek = fd
	s.Calendar.ShowSidebar = v.GetBool("calendar.showSidebar")

	if p := v.GetString("calendar.defaultPreset"); p != "" && p != NoPreset {
		preset, ok := dates.ParsePreset(p)
		if !ok {
			return nil, fmt.Errorf("calendar.defaultPreset: unknown preset %q", p)
		}
		s.Calendar.DefaultPreset = preset
	}

	mode, ok := shell.ParseDisplayMode(v.GetString("calendar.displayMode"))
	if !ok {
		return nil, fmt.Errorf("calendar.displayMode: unsupported value %q", v.GetString("calendar.displayMode"))
	}
	s.Calendar.DisplayMode = mode

	s.Appearance = Appearance{
		Accent:     Color(v.GetString("appearance.accentColor"), DefaultAccent),
		Background: Color(v.GetString("appearance.backgroundColor"), DefaultBackground),
		Text:       Color(v.GetString("appearance.textColor"), DefaultText),
		Border:     Color(v.GetString("appearance.borderColor"), DefaultBorder),
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}
	s.Path = path
	s.LogLevel = v.GetString("log.level")
	if f := v.GetString("log.file"); f != "" {
		if s.LogFile, err = homedir.Expand(f); err != nil {
			return nil, fmt.Errorf("log.file: %w", err)
		}
	}
	return s, nil
}

// ParseFirstDay accepts sunday/monday or 0/1.
func ParseFirstDay(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "sunday", "sun", "":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || (n != 0 && n != 1) {
		return time.Sunday, false
	}
	return time.Weekday(n), true
}

// Color normalizes a hex color, falling back when it does not parse.
func Color(hex, fallback string) string {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return fallback
	}
	return strings.ToUpper(c.Hex())
}
