package config

import (
	"fmt"
	"strings"

	"splice/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCorrection()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.JournalDB, err = expandPath(c.Paths.JournalDB); err != nil {
		return fmt.Errorf("paths.journal_db: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCorrection() {
	if len(c.Correction.Languages) == 0 {
		c.Correction.Languages = []string{"eng", "en"}
	}
	normalized := language.NormalizeList(c.Correction.Languages)
	if len(normalized) > 0 {
		c.Correction.Languages = normalized
	}
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.MkvExtract = strings.TrimSpace(c.Tools.MkvExtract)
	c.Tools.MkvMerge = strings.TrimSpace(c.Tools.MkvMerge)
	c.Tools.DoviTool = strings.TrimSpace(c.Tools.DoviTool)
	c.Tools.OCRConverter = strings.TrimSpace(c.Tools.OCRConverter)
	if c.Tools.TimeoutSeconds <= 0 {
		c.Tools.TimeoutSeconds = defaultToolTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
