package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateVerification(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.MaxEditDistance < 0 {
		return errors.New("matching.max_edit_distance must be zero or positive")
	}
	if c.Matching.MinFuzzyLength < 1 {
		return errors.New("matching.min_fuzzy_length must be at least 1")
	}
	if c.Matching.MinTitleLength < 1 {
		return errors.New("matching.min_title_length must be at least 1")
	}
	if c.Matching.MinSlugLength < 1 {
		return errors.New("matching.min_slug_length must be at least 1")
	}
	if c.Matching.TitlePrefixLength < 1 {
		return errors.New("matching.title_prefix_length must be at least 1")
	}
	if c.Matching.RevivalWindowDays < 1 {
		return errors.New("matching.revival_window_days must be at least 1")
	}
	return nil
}

func (c *Config) validateVerification() error {
	if c.Verification.QuarantineMinSignals < 1 {
		return errors.New("verification.quarantine_min_signals must be at least 1")
	}
	if c.Verification.PreviewWindowDays < 0 {
		return errors.New("verification.preview_window_days must be zero or positive")
	}
	if c.Verification.MismatchFailPercent < 0 || c.Verification.MismatchFailPercent > 100 {
		return errors.New("verification.mismatch_fail_percent must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateScoring() error {
	if c.Scoring.DiscourseWeightPercent < 0 || c.Scoring.DiscourseWeightPercent > 100 {
		return errors.New("scoring.discourse_weight_percent must be between 0 and 100")
	}
	bands := c.Scoring.Bands
	if len(bands) == 0 {
		return errors.New("scoring.bands must define at least one tier")
	}
	for i, band := range bands {
		if strings.TrimSpace(band.Name) == "" {
			return fmt.Errorf("scoring.bands[%d] has an empty name", i)
		}
		if band.Min < 0 || band.Min > 100 {
			return fmt.Errorf("scoring.bands[%d] min must be between 0 and 100", i)
		}
		if i > 0 && band.Min >= bands[i-1].Min {
			return fmt.Errorf("scoring.bands must be strictly decreasing: %q (min %d) does not fall below %q (min %d)",
				band.Name, band.Min, bands[i-1].Name, bands[i-1].Min)
		}
	}
	if bands[len(bands)-1].Min != 0 {
		return errors.New("scoring.bands must end with a tier at min 0 so every score maps to a designation")
	}
	return nil
}
