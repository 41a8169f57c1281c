package config

const (
	defaultDataDir   = "~/.local/share/broadwayscore"
	defaultLogDir    = "~/.local/share/broadwayscore/logs"
	defaultExportDir = "~/.local/share/broadwayscore/export"

	defaultMaxEditDistance   = 2
	defaultMinFuzzyLength    = 5
	defaultMinTitleLength    = 3
	defaultMinSlugLength     = 5
	defaultTitlePrefixLength = 10
	defaultRevivalWindowDays = 180

	defaultQuarantineMinSignals = 2
	defaultPreviewWindowDays    = 60
	defaultMismatchFailPercent  = 25

	defaultDiscourseWeightPercent = 20

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultBands() []Band {
	return []Band{
		{Name: "Loving", Min: 88},
		{Name: "Liking", Min: 78},
		{Name: "Shrugging", Min: 68},
		{Name: "Loathing", Min: 0},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		Matching: Matching{
			MaxEditDistance:   defaultMaxEditDistance,
			MinFuzzyLength:    defaultMinFuzzyLength,
			MinTitleLength:    defaultMinTitleLength,
			MinSlugLength:     defaultMinSlugLength,
			TitlePrefixLength: defaultTitlePrefixLength,
			RevivalWindowDays: defaultRevivalWindowDays,
		},
		Verification: Verification{
			QuarantineMinSignals: defaultQuarantineMinSignals,
			PreviewWindowDays:    defaultPreviewWindowDays,
			MismatchFailPercent:  defaultMismatchFailPercent,
		},
		Scoring: Scoring{
			DiscourseWeightPercent: defaultDiscourseWeightPercent,
			Bands:                  defaultBands(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
