// Package config centralizes process configuration. Values load from
// environment variables with sane defaults; an optional YAML file can
// override any of them for local-dev runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is centralized process configuration, keyed the same way as the
// spec.md §6 tunables it mirrors.
type Config struct {
	ServiceName string `yaml:"serviceName"`
	HTTPPort    string `yaml:"httpPort"`
	PostgresDSN string `yaml:"postgresDSN"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	Mode        string `yaml:"mode"`
	StageToDisk bool   `yaml:"stageToDisk"`

	PollFixedDelay     time.Duration `yaml:"pollFixedDelayMs"`
	QueueCapacity      int           `yaml:"queueCapacity"`
	ConcurrencyWorkers int           `yaml:"concurrencyParserWorkers"`

	BatchSize          int           `yaml:"batchSize"`
	BatchMaxTxnSeconds time.Duration `yaml:"batchMaxTxnSeconds"`
	TxPerFile          bool          `yaml:"txPerFile"`
	TxPerChunk         bool          `yaml:"txPerChunk"`

	AckEnabled bool `yaml:"ackEnabled"`

	LocalFSReadyDir     string `yaml:"localfsReadyDir"`
	LocalFSArchiveOkDir string `yaml:"localfsArchiveOkDir"`
	LocalFSArchiveFail  string `yaml:"localfsArchiveFailDir"`

	ParserMaxAttachmentBytes int  `yaml:"parserMaxAttachmentBytes"`
	ParserFailOnXsdError     bool `yaml:"parserFailOnXsdError"`

	VerificationRulesPath string `yaml:"verificationRulesPath"`
}

func defaults() Config {
	return Config{
		ServiceName: "claims-ingestor",
		HTTPPort:    "8080",
		PostgresDSN: "",

		LogLevel:  "info",
		LogFormat: "json",

		Mode:        "localfs",
		StageToDisk: true,

		PollFixedDelay:     200 * time.Millisecond,
		QueueCapacity:      256,
		ConcurrencyWorkers: 4,

		BatchSize:          100,
		BatchMaxTxnSeconds: 30 * time.Second,
		TxPerFile:          true,
		TxPerChunk:         false,

		AckEnabled: false,

		LocalFSReadyDir:     "./data/ready",
		LocalFSArchiveOkDir: "./data/ok",
		LocalFSArchiveFail:  "./data/fail",

		ParserMaxAttachmentBytes: 10 * 1024 * 1024,
		ParserFailOnXsdError:     false,

		VerificationRulesPath: "./config/verification-rules.yaml",
	}
}

// Load builds a Config from defaults, then environment variables, then an
// optional YAML file named by CLAIMS_INGESTOR_CONFIG_FILE.
func Load() (Config, error) {
	cfg := defaults()

	overlayEnv(&cfg)

	if path := os.Getenv("CLAIMS_INGESTOR_CONFIG_FILE"); path != "" {
		if err := overlayYAML(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("loading config overlay %s: %w", path, err)
		}
	}

	if cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("config: POSTGRES_DSN is required")
	}

	return cfg, nil
}

func overlayYAML(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, cfg)
}

func overlayEnv(cfg *Config) {
	str("SERVICE_NAME", &cfg.ServiceName)
	str("HTTP_PORT", &cfg.HTTPPort)
	str("POSTGRES_DSN", &cfg.PostgresDSN)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("INGESTOR_MODE", &cfg.Mode)
	boolean("STAGE_TO_DISK", &cfg.StageToDisk)
	duration("POLL_FIXED_DELAY_MS", &cfg.PollFixedDelay, time.Millisecond)
	integer("QUEUE_CAPACITY", &cfg.QueueCapacity)
	integer("CONCURRENCY_PARSER_WORKERS", &cfg.ConcurrencyWorkers)
	integer("BATCH_SIZE", &cfg.BatchSize)
	duration("BATCH_MAX_TXN_SECONDS", &cfg.BatchMaxTxnSeconds, time.Second)
	boolean("TX_PER_FILE", &cfg.TxPerFile)
	boolean("TX_PER_CHUNK", &cfg.TxPerChunk)
	boolean("ACK_ENABLED", &cfg.AckEnabled)
	str("LOCALFS_READY_DIR", &cfg.LocalFSReadyDir)
	str("LOCALFS_ARCHIVE_OK_DIR", &cfg.LocalFSArchiveOkDir)
	str("LOCALFS_ARCHIVE_FAIL_DIR", &cfg.LocalFSArchiveFail)
	integer("PARSER_MAX_ATTACHMENT_BYTES", &cfg.ParserMaxAttachmentBytes)
	boolean("PARSER_FAIL_ON_XSD_ERROR", &cfg.ParserFailOnXsdError)
	str("VERIFICATION_RULES_PATH", &cfg.VerificationRulesPath)
}

func str(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func boolean(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err == nil {
		*dst = parsed
	}
}

func integer(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err == nil {
		*dst = parsed
	}
}

func duration(key string, dst *time.Duration, unit time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err == nil {
		*dst = time.Duration(parsed) * unit
	}
}
