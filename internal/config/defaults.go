package config

const (
	defaultDataDir                  = "~/.local/share/tubenote"
	defaultLogDir                   = "~/.local/share/tubenote/logs"
	defaultGeminiBaseURL            = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel              = "gemini-2.5-flash"
	defaultGeminiTimeoutSeconds     = 60
	defaultTranscriptScriptPath     = "~/.config/tubenote/scripts/get_transcript.py"
	defaultTranscriptPythonBinary   = "python3"
	defaultTranscriptTimeoutSeconds = 30
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Gemini: Gemini{
			BaseURL:        defaultGeminiBaseURL,
			Model:          defaultGeminiModel,
			TimeoutSeconds: defaultGeminiTimeoutSeconds,
		},
		Transcript: Transcript{
			ScriptPath:     defaultTranscriptScriptPath,
			PythonBinary:   defaultTranscriptPythonBinary,
			TimeoutSeconds: defaultTranscriptTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
