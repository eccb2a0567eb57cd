package config

import "flag"

// Flags defines the command-line surface and applies explicitly set flags
// on top of the loaded config. The -config flag is parsed first so file
// values can still be overridden per invocation.
type Flags struct {
	ConfigPath string

	endpoint  *string
	model     *string
	language  *string
	prompt    *string
	textPath  *string
	timeout   *int
	maxRetry  *int
	baseDelay *float64
	http2     *bool
	verifySSL *bool
	notify    *bool
	settleMS  *int
}

// RegisterFlags declares all flags on the given FlagSet.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "path to JSON config file")
	f.endpoint = fs.String("endpoint", "", "transcription API endpoint")
	f.model = fs.String("model", "", "transcription model name")
	f.language = fs.String("language", "", "spoken language hint (ISO-639-1)")
	f.prompt = fs.String("prompt", "", "transcription prompt")
	f.textPath = fs.String("text-path", "", "JSON path of the text field in the API response")
	f.timeout = fs.Int("timeout", 0, "per-request timeout in seconds")
	f.maxRetry = fs.Int("max-retry", 0, "max upload attempts")
	f.baseDelay = fs.Float64("retry-base-delay", 0, "initial retry backoff in seconds")
	f.http2 = fs.Bool("http2", true, "enable HTTP/2 for uploads")
	f.verifySSL = fs.Bool("verify-ssl", true, "verify TLS certificates")
	f.notify = fs.Bool("notify", true, "show desktop notifications")
	f.settleMS = fs.Int("settle-ms", 0, "clipboard settle delay before paste, in milliseconds")
	return f
}

// Apply overlays flags that were explicitly set onto cfg.
func (f *Flags) Apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "endpoint":
			cfg.APIEndpoint = *f.endpoint
		case "model":
			cfg.Model = *f.model
		case "language":
			cfg.Language = *f.language
		case "prompt":
			cfg.Prompt = *f.prompt
		case "text-path":
			cfg.TextPath = *f.textPath
		case "timeout":
			cfg.RequestTimeout = *f.timeout
		case "max-retry":
			cfg.MaxRetry = *f.maxRetry
		case "retry-base-delay":
			cfg.RetryBaseDelay = *f.baseDelay
		case "http2":
			cfg.EnableHTTP2 = *f.http2
		case "verify-ssl":
			cfg.VerifySSL = *f.verifySSL
		case "notify":
			cfg.Notification = *f.notify
		case "settle-ms":
			cfg.SettleDelayMS = *f.settleMS
		}
	})
}
