package config

const (
	defaultWorkDir      = "~/.local/share/splice/work"
	defaultLogDir       = "~/.local/share/splice/logs"
	defaultJournalDB    = "~/.local/share/splice/journal.db"
	defaultOutputDir    = "~/library"
	defaultFFmpeg       = "ffmpeg"
	defaultMkvExtract   = "mkvextract"
	defaultMkvMerge     = "mkvmerge"
	defaultDoviTool     = "dovi_tool"
	defaultOCRConverter = "vobsub2srt"
	defaultToolTimeout  = 1800
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
			JournalDB: defaultJournalDB,
			OutputDir: defaultOutputDir,
		},
		Correction: Correction{
			Enabled:   true,
			Languages: []string{"eng", "en"},
		},
		Tools: Tools{
			FFmpeg:         defaultFFmpeg,
			MkvExtract:     defaultMkvExtract,
			MkvMerge:       defaultMkvMerge,
			DoviTool:       defaultDoviTool,
			OCRConverter:   defaultOCRConverter,
			TimeoutSeconds: defaultToolTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
