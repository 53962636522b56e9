package config

import (
	"flag"
	"fmt"
	"github.com/convox/logger"
	"github.com/jamiealquiza/envy"
	"os"
)

const (
	HandlerRecording = "recording"
	HandlerMetadata  = "metadata"

	// envPrefix is prepended to every flag name to form its environment variable
	envPrefix = "INGEST"
)

// Config defines all of the service configuration parameters
type Config struct {
	Handler  string
	Table    string
	Endpoint string
	DryRun   bool
	// Args holds the positional arguments left after flag parsing.
	Args []string
}

// ConfigError is returned when a required setting is missing or invalid.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Setting, e.Reason)
}

// Load reads the configuration from the command line and the environment.
// Every flag can be set with an INGEST_<FLAG> environment variable, the
// command line wins over the environment.
func Load(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.StringVar(&cfg.Handler, "handler", "", "Handler to run: recording or metadata")
	fs.StringVar(&cfg.Table, "table", os.Getenv("DYNAMO_TABLE_NAME"), "DynamoDB table receiving the rows")
	fs.StringVar(&cfg.Endpoint, "endpoint", os.Getenv("AWS_ENDPOINT"), "Custom AWS endpoint, e.g. localstack")
	fs.BoolVar(&cfg.DryRun, "dryrun", false, "Print rows to stdout instead of writing them")

	// envy only works on the process-wide flag set
	flag.CommandLine = fs
	envy.Parse(envPrefix)

	if err := fs.Parse(args); err != nil {
		return Config{}, &ConfigError{Setting: "flags", Reason: err.Error()}
	}
	cfg.Args = fs.Args()

	switch cfg.Handler {
	case HandlerRecording, HandlerMetadata:
	case "":
		return Config{}, &ConfigError{Setting: "handler", Reason: "cannot be blank"}
	default:
		return Config{}, &ConfigError{Setting: "handler", Reason: fmt.Sprintf("unknown value %q", cfg.Handler)}
	}

	if cfg.Table == "" {
		return Config{}, &ConfigError{Setting: "table", Reason: "cannot be blank (set DYNAMO_TABLE_NAME)"}
	}

	return cfg, nil
}

// Log writes every loaded setting to log.
func (c Config) Log(log *logger.Logger) {
	log = log.At("config")
	log.Logf("handler=%s", c.Handler)
	log.Logf("table=%s", c.Table)
	log.Logf("endpoint=%q", c.Endpoint)
	log.Logf("dryrun=%t", c.DryRun)
}
