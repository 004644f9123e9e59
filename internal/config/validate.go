package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir is required")
	}
	if c.Paths.JournalDB == "" {
		return errors.New("paths.journal_db is required")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.MkvExtract == "" {
		return errors.New("tools.mkvextract is required")
	}
	if c.Tools.MkvMerge == "" {
		return errors.New("tools.mkvmerge is required")
	}
	if c.Tools.TimeoutSeconds <= 0 {
		return fmt.Errorf("tools.timeout_seconds must be positive, got %d", c.Tools.TimeoutSeconds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
