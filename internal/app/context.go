package app

import (
	"fmt"
	"time"

	"hosline/internal/config"
	"hosline/internal/domain"
	"hosline/internal/hos"
	"hosline/internal/segments"
)

// Overrides are command-line values layered over hos.yml. Nil pointers and
// empty strings leave the config value in place.
type Overrides struct {
	Cycle                string
	Timezone             string
	OtherEmployerMinutes *int
	PriorDriving         *time.Duration
	Limit                string
	Horizon              *time.Duration
}

// ResolveOptions loads the workspace config (defaults when hos.yml is
// absent), applies overrides and the duty log's own settings, and returns
// the options an evaluation runs with. Precedence, highest first: overrides,
// the duty log, hos.yml.
func ResolveOptions(workspace string, o Overrides, log segments.File) (*config.Config, hos.ProjectOptions, error) {
	cfg, err := config.LoadOptional(workspace)
	if err != nil {
		return nil, hos.ProjectOptions{}, err
	}
	if o.Cycle != "" {
		cfg.Rules.Cycle = o.Cycle
	}
	if o.Timezone != "" {
		cfg.Driver.Timezone = o.Timezone
	}
	if log.OtherEmployerMinutes > 0 {
		cfg.Rules.OtherEmployerMinutes = log.OtherEmployerMinutes
	}
	if o.OtherEmployerMinutes != nil {
		cfg.Rules.OtherEmployerMinutes = *o.OtherEmployerMinutes
	}
	if o.PriorDriving != nil {
		cfg.Rules.Break.PriorDriving = *o.PriorDriving
	}
	if o.Limit != "" {
		cfg.Projection.Limit = o.Limit
	}
	if o.Horizon != nil {
		cfg.Projection.Horizon = *o.Horizon
	}
	if log.DriverID != "" && cfg.Driver.ID == "" {
		cfg.Driver.ID = log.DriverID
	}
	if err := cfg.Validate(); err != nil {
		return nil, hos.ProjectOptions{}, err
	}
	opts, err := Options(cfg)
	if err != nil {
		return nil, hos.ProjectOptions{}, err
	}
	return cfg, opts, nil
}

// Options converts a validated config into evaluation options.
func Options(cfg *config.Config) (hos.ProjectOptions, error) {
	cycle, err := hos.ParseCycle(cfg.Rules.Cycle)
	if err != nil {
		return hos.ProjectOptions{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return hos.ProjectOptions{}, err
	}
	return hos.ProjectOptions{
		Options: hos.Options{
			Cycle:                  cycle,
			Location:               loc,
			OtherEmployerMinutes:   cfg.Rules.OtherEmployerMinutes,
			PriorDrivingSinceBreak: cfg.Rules.Break.PriorDriving,
		},
		Limit:   domain.ViolationType(cfg.Projection.Limit),
		Horizon: cfg.Projection.Horizon,
	}, nil
}

// ParseInstant reads an RFC 3339 instant, or returns fallback() when s is
// empty. The result is always UTC.
func ParseInstant(s string, fallback func() time.Time) (time.Time, error) {
	if s == "" {
		return fallback().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: want RFC 3339", s)
	}
	return t.UTC(), nil
}
