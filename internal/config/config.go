package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
)

// Config holds everything the bridge needs: the Fireplan credentials, the
// extraction patterns, the pager catalogue, and the ingest server settings.
type Config struct {
	// FireplanAPIKey authenticates the token registration against the Fireplan API.
	FireplanAPIKey string `yaml:"fireplan_api_key"`
	// Standort is the Fireplan location name the token is registered for.
	Standort string `yaml:"standort"`
	// FireplanBaseURL is the base URL of the Fireplan REST API.
	FireplanBaseURL string `yaml:"fireplan_base_url"`
	// RegexOrt extracts the town from one line of the alarm text.
	RegexOrt string `yaml:"regex_ort"`
	// RegexOrtsteil extracts the district from one line of the alarm text.
	RegexOrtsteil string `yaml:"regex_ortsteil"`
	// RegexObjektname extracts the object name from one line of the alarm text.
	RegexObjektname string `yaml:"regex_objektname"`
	// Rics is the pager catalogue resource strings are resolved against.
	Rics []alarm.Ric `yaml:"rics"`
	// HTTPHost is the listen host of the ingest server.
	HTTPHost string `yaml:"http_host"`
	// HTTPPort is the listen port of the ingest server.
	HTTPPort int `yaml:"http_port"`
	// AuthToken is the shared secret the webhook must present on /submit.
	AuthToken string `yaml:"auth_token"`
	// TLSCertFile is the path to the PEM certificate chain. Optional,
	// but only together with TLSKeyFile.
	TLSCertFile string `yaml:"tls_cert_file"`
	// TLSKeyFile is the path to the PEM private key. Optional,
	// but only together with TLSCertFile.
	TLSKeyFile string `yaml:"tls_key_file"`
	// SimpleTrigger is a shell command started after each delivered alarm. Optional.
	SimpleTrigger string `yaml:"simple_trigger"`
	// ReceivedLogFile is the audit file appended to for every accepted alarm.
	ReceivedLogFile string `yaml:"received_log_file"`
	// SubmittedLogFile is the audit file appended to for every delivered record.
	SubmittedLogFile string `yaml:"submitted_log_file"`
	// QueueSize is the capacity of the alarm hand-off queue.
	QueueSize int `yaml:"queue_size"`
}

const (
	// DefaultConfigFilename is the default filename for bridge settings.
	DefaultConfigFilename = "fireplan-alarm-divera.yaml"

	// DefaultFireplanBaseURL is the production endpoint of the Fireplan REST API.
	DefaultFireplanBaseURL = "https://data.fireplan.de/api"

	// DefaultStandort is the Fireplan location used when none is configured.
	DefaultStandort = "Verwaltung"

	// DefaultHTTPHost is the listen host used when none is configured.
	DefaultHTTPHost = "0.0.0.0"

	// DefaultHTTPPort is the listen port used when none is configured.
	DefaultHTTPPort = 8443

	// DefaultReceivedLogFilename is the default audit file for accepted alarms.
	DefaultReceivedLogFilename = "fireplan-alarm-received.log"

	// DefaultSubmittedLogFilename is the default audit file for delivered records.
	DefaultSubmittedLogFilename = "fireplan-alarm-submitted.log"

	// DefaultQueueSize is the default capacity of the alarm hand-off queue.
	DefaultQueueSize = 64

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errAPIKeyRequired is returned when the Fireplan API key is missing.
	errAPIKeyRequired = errors.New("fireplan_api_key must be provided")
	// errAuthTokenRequired is returned when the webhook secret is missing.
	errAuthTokenRequired = errors.New("auth_token must be provided")
	// errCatalogueRequired is returned when no pager catalogue is configured.
	errCatalogueRequired = errors.New("at least one rics entry must be provided")
	// errTLSFilesIncomplete is returned when only one of the TLS files is set.
	errTLSFilesIncomplete = errors.New("tls_cert_file and tls_key_file must be provided together")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions, the file carries the API key.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields, compiles the extraction patterns, and
// fills in defaults. A configuration that fails validation must abort
// startup; a half-configured bridge would silently drop alarms.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.FireplanAPIKey == "" {
		return errAPIKeyRequired
	}

	if cfg.AuthToken == "" {
		return errAuthTokenRequired
	}

	if len(cfg.Rics) == 0 {
		return errCatalogueRequired
	}

	for i, r := range cfg.Rics {
		// Dummy and always-on entries are never matched by text,
		// so an empty text is only legal for them.
		if r.Text == "" && !r.Always && !r.Dummy {
			return fmt.Errorf("rics entry %d: text must be provided", i)
		}

		if r.Ric == "" {
			return fmt.Errorf("rics entry %d: ric must be provided", i)
		}

		if r.Dummy && r.Department == "" {
			return fmt.Errorf("rics entry %d: dummy entries need a department", i)
		}
	}

	patterns := map[string]string{
		"regex_ort":        cfg.RegexOrt,
		"regex_ortsteil":   cfg.RegexOrtsteil,
		"regex_objektname": cfg.RegexObjektname,
	}
	for name, pattern := range patterns {
		if pattern == "" {
			return fmt.Errorf("%s must be provided", name)
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if re.NumSubexp() < 1 {
			return fmt.Errorf("%s must contain a capture group", name)
		}
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return errTLSFilesIncomplete
	}

	if cfg.Standort == "" {
		cfg.Standort = DefaultStandort
	}

	if cfg.FireplanBaseURL == "" {
		cfg.FireplanBaseURL = DefaultFireplanBaseURL
	}

	if _, err := url.ParseRequestURI(cfg.FireplanBaseURL); err != nil {
		return fmt.Errorf("invalid fireplan_base_url: %w", err)
	}

	if cfg.HTTPHost == "" {
		cfg.HTTPHost = DefaultHTTPHost
	}

	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = DefaultHTTPPort
	}

	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", cfg.HTTPPort)
	}

	if cfg.ReceivedLogFile == "" {
		cfg.ReceivedLogFile = DefaultReceivedLogFilename
	}

	if cfg.SubmittedLogFile == "" {
		cfg.SubmittedLogFile = DefaultSubmittedLogFilename
	}

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}

	return nil
}

// ListenAddress returns the host:port pair the ingest server binds to.
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}

// UseTLS reports whether the ingest server should serve HTTPS.
func (c *Config) UseTLS() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
