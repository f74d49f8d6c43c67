package deployclient

import (
	"errors"
	"time"

	"github.com/nais/opsdeploy/pkg/conftools"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultDeployTimeout = time.Minute * 10
	DefaultPollInterval  = time.Second * 5
	DefaultMaxAttempts   = 3
)

var (
	ErrAppIDRequired          = errors.New("app-id is required; it identifies the OpsWorks application to deploy")
	ErrAccessKeyRequired      = errors.New("set --access-key-id or AWS_ACCESS_KEY_ID")
	ErrSecretKeyRequired      = errors.New("set --secret-access-key or AWS_SECRET_ACCESS_KEY")
	ErrConflictingPayload     = errors.New("custom-json and custom-json-file are mutually exclusive")
	ErrInvalidTimeout         = errors.New("timeout must be a positive duration")
	ErrInvalidPollInterval    = errors.New("poll-interval must be a positive duration")
	ErrVariablesWithoutFile   = errors.New("template variables require custom-json-file")
	ErrInvalidRetryMaxAttempt = errors.New("retry-max-attempts must be at least 1")
)

// Configuration keys, as used in flags, the configuration file and the environment.
const (
	AccessKeyID               = "access-key-id"
	Actions                   = "actions"
	AppID                     = "app-id"
	Comment                   = "comment"
	CustomJSON                = "custom-json"
	CustomJSONFile            = "custom-json-file"
	DryRun                    = "dry-run"
	EndpointURL               = "endpoint-url"
	GitDirectory              = "git-dir"
	InstanceIDs               = "instance-ids"
	LogLevel                  = "log-level"
	Migrate                   = "migrate"
	OpenTelemetryCollectorURL = "otel-collector-endpoint"
	PollInterval              = "poll-interval"
	PrintPayload              = "print-payload"
	PushgatewayURL            = "pushgateway-url"
	Quiet                     = "quiet"
	Region                    = "region"
	RetryMaxAttempts          = "retry-max-attempts"
	Revision                  = "revision"
	SecretAccessKey           = "secret-access-key"
	DeployTimeout             = "timeout"
	Variables                 = "var"
	VariablesFile             = "vars"
	Wait                      = "wait"
)

// SecretKeys lists configuration keys whose values must be redacted before printing.
var SecretKeys = []string{
	AccessKeyID,
	SecretAccessKey,
}

type Config struct {
	AccessKeyID               string        `json:"access-key-id"`
	Actions                   bool          `json:"actions"`
	AppID                     string        `json:"app-id"`
	Comment                   string        `json:"comment"`
	CustomJSON                string        `json:"custom-json"`
	CustomJSONFile            string        `json:"custom-json-file"`
	DryRun                    bool          `json:"dry-run"`
	EndpointURL               string        `json:"endpoint-url"`
	GitDirectory              string        `json:"git-dir"`
	InstanceIDs               []string      `json:"instance-ids"`
	LogLevel                  string        `json:"log-level"`
	Migrate                   bool          `json:"migrate"`
	OpenTelemetryCollectorURL string        `json:"otel-collector-endpoint"`
	PollInterval              time.Duration `json:"poll-interval"`
	PrintPayload              bool          `json:"print-payload"`
	PushgatewayURL            string        `json:"pushgateway-url"`
	Quiet                     bool          `json:"quiet"`
	Region                    string        `json:"region"`
	RetryMaxAttempts          int           `json:"retry-max-attempts"`
	Revision                  string        `json:"revision"`
	SecretAccessKey           string        `json:"secret-access-key"`
	Timeout                   time.Duration `json:"timeout"`
	Variables                 []string      `json:"var"`
	VariablesFile             string        `json:"vars"`
	Wait                      bool          `json:"wait"`
}

// InitConfig registers command-line flags. Every flag can also be set with an
// OPSDEPLOY_ prefixed environment variable, or in opsdeploy.yaml.
func InitConfig() {
	conftools.Initialize("opsdeploy")

	flag.String(AccessKeyID, "", "AWS access key ID. Falls back to AWS_ACCESS_KEY_ID.")
	flag.Bool(Actions, false, "Use GitHub Actions compatible error and warning messages.")
	flag.String(AppID, "", "OpsWorks application ID to deploy.")
	flag.String(Comment, "", "Deployment comment. Defaults to a description of the CI build.")
	flag.String(CustomJSON, "", "Custom JSON object passed to the deployment, replacing the default.")
	flag.String(CustomJSONFile, "", "YAML or JSON file with the custom deployment payload. Supports Handlebars templating.")
	flag.Bool(DryRun, false, "Resolve the application and build the request, but don't create a deployment.")
	flag.String(EndpointURL, "", "Override the OpsWorks API endpoint.")
	flag.String(GitDirectory, ".", "Git working copy used to detect the current revision.")
	flag.StringSlice(InstanceIDs, []string{}, "Restrict the deployment to these instances. Can be specified multiple times.")
	flag.String(LogLevel, "info", "Log level (trace, debug, info, warning, error).")
	flag.Bool(Migrate, false, "Ask the deployment to run database migrations.")
	flag.String(OpenTelemetryCollectorURL, "", "OpenTelemetry collector endpoint. Tracing is local only when empty.")
	flag.Duration(PollInterval, DefaultPollInterval, "Time between deployment status queries.")
	flag.Bool(PrintPayload, false, "Print the deployment request to standard output.")
	flag.String(PushgatewayURL, "", "Prometheus Pushgateway to report deployment metrics to.")
	flag.Bool(Quiet, false, "Suppress printing of informational messages except errors.")
	flag.String(Region, "", "AWS region. Falls back to AWS_REGION, then "+DefaultRegion+".")
	flag.Int(RetryMaxAttempts, DefaultMaxAttempts, "Maximum attempts for each API call, as performed by the AWS SDK.")
	flag.String(Revision, "", "Commit being deployed. Detected from the CI environment or git if not specified.")
	flag.String(SecretAccessKey, "", "AWS secret access key. Falls back to AWS_SECRET_ACCESS_KEY.")
	flag.Duration(DeployTimeout, DefaultDeployTimeout, "Time to wait for the deployment to finish.")
	flag.StringSlice(Variables, []string{}, "Template variable in the form KEY=VALUE. Can be specified multiple times.")
	flag.String(VariablesFile, "", "File containing template variables.")
	flag.Bool(Wait, false, "Block until the deployment reaches a final state.")
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	err := conftools.Load(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options for a single deployment run, derived from configuration.
func (cfg *Config) Options() (Options, error) {
	opts := Options{
		WaitUntilDeployed: cfg.Wait,
		InstanceIDs:       cfg.InstanceIDs,
		Migrate:           cfg.Migrate,
		Region:            cfg.Region,
		Timeout:           cfg.Timeout,
		PollInterval:      cfg.PollInterval,
		Revision:          cfg.Revision,
		Comment:           cfg.Comment,
		DryRun:            cfg.DryRun,
		PrintPayload:      cfg.PrintPayload,
	}

	payload, err := LoadCustomPayload(*cfg)
	if err != nil {
		return opts, err
	}
	opts.CustomPayload = payload

	return opts, nil
}

func (cfg *Config) Validate() error {
	if len(cfg.AppID) == 0 {
		return ErrAppIDRequired
	}

	if len(cfg.CustomJSON) > 0 && len(cfg.CustomJSONFile) > 0 {
		return ErrConflictingPayload
	}

	if len(cfg.CustomJSONFile) == 0 && (len(cfg.Variables) > 0 || len(cfg.VariablesFile) > 0) {
		return ErrVariablesWithoutFile
	}

	if cfg.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if cfg.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}

	if cfg.RetryMaxAttempts < 1 {
		return ErrInvalidRetryMaxAttempt
	}

	return nil
}

// ConfigFile returns the path of the configuration file in use, if any.
func ConfigFile() string {
	return viper.ConfigFileUsed()
}
