package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/julmat/internal/config"
	"github.com/theirongolddev/julmat/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

var errRequired = errors.New("obligatoriskt fält")

// setupValues is bound to the setup form fields.
type setupValues struct {
	cfg        config.Config
	dataSource string
	backend    string
	redisAddr  string
	theme      string
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		cfg:        cfg,
		dataSource: cfg.General.DataSource,
		backend:    cfg.Store.Backend,
		redisAddr:  cfg.Store.Redis.Addr,
		theme:      cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the first-run form for data source, status backend
// and theme.
func NewSetupForm(v *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Välkommen till julmat!").
				Description("Några frågor innan listan laddas."),
			huh.NewInput().
				Title("Lista (data.json)").
				Description("Sökväg eller http(s)-adress till listan.").
				Value(&v.dataSource).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errRequired
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Var ska bockarna sparas?").
				Options(
					huh.NewOption("Lokalt (SQLite)", "sqlite"),
					huh.NewOption("Delat (Redis)", "redis"),
					huh.NewOption("Bara i minnet", "memory"),
				).
				Value(&v.backend),
			huh.NewInput().
				Title("Redis-adress").
				Description("Används bara med Redis.").
				Value(&v.redisAddr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Färgtema").
				Options(themeOpts...).
				Value(&v.theme),
		),
	)
}

// RunSetup runs the setup form standalone and saves the result.
func RunSetup() (config.Config, error) {
	cfg, _ := config.Load()
	v := newSetupValues(cfg)
	if err := NewSetupForm(v).Run(); err != nil {
		return cfg, err
	}
	return saveSetup(v)
}

// saveSetup applies the form values to the config, activates the theme and
// writes the config file.
func saveSetup(v *setupValues) (config.Config, error) {
	cfg := v.cfg
	cfg.General.DataSource = strings.TrimSpace(v.dataSource)
	cfg.Store.Backend = v.backend
	if addr := strings.TrimSpace(v.redisAddr); addr != "" {
		cfg.Store.Redis.Addr = addr
	}
	cfg.Appearance.Theme = v.theme
	theme.SetActive(cfg.Appearance.Theme)

	return cfg, config.Save(cfg)
}
