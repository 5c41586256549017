package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/mpipgo/internal/executor"
	"github.com/specialistvlad/mpipgo/internal/store"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath       string // report file or directory
	CredentialsPath string // YAML database credentials

	InterfaceOverride string
	RulesPath         string // HCL classifier rules

	OutputJSON    string
	OutputMsgpack string

	DryRun        bool
	Partition     store.Partition
	UploadTimeout time.Duration
	NotifyURL     string

	Progress        bool
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if !cfg.DryRun && cfg.CredentialsPath == "" {
		return nil, errors.New("a credentials file is required unless running in dry-run mode")
	}

	partition, err := store.ParsePartition(string(cfg.Partition))
	if err != nil {
		return nil, err
	}
	cfg.Partition = partition

	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("invalid worker count %d: must not be negative", cfg.WorkerCount)
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = executor.DefaultWorkers
	}

	if cfg.UploadTimeout < 0 {
		return nil, fmt.Errorf("invalid upload timeout %s: must not be negative", cfg.UploadTimeout)
	}
	if cfg.UploadTimeout == 0 {
		cfg.UploadTimeout = store.DefaultUploadTimeout
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}

	return &cfg, nil
}
