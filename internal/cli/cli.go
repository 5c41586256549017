package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/mpipgo/internal/app"
	"github.com/specialistvlad/mpipgo/internal/executor"
	"github.com/specialistvlad/mpipgo/internal/store"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mpipgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mpipgo - Parse mpiP profiling reports and store the results.

Usage:
  mpipgo [options] INPUT_PATH

Arguments:
  INPUT_PATH
    A single report file, or a directory searched recursively for reports
    (.txt, .out, .log, .mpiP or no extension).

Options:
`)
		flagSet.PrintDefaults()
	}

	credentialsFlag := flagSet.String("credentials", "", "Path to the YAML database credentials file. Required unless --dry-run is set.")
	interfaceFlag := flagSet.String("interface", "", "Interface type to record instead of detecting it from the report.")
	outputJSONFlag := flagSet.String("output-json", "", "Write all parsed records to this JSON file.")
	outputMsgpackFlag := flagSet.String("output-msgpack", "", "Write all parsed records to this msgpack file.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Parse and print a summary without uploading.")
	partitionFlag := flagSet.String("partition", string(store.PartitionBatchSize), "Collection key for uploads. Options: 'batch_size' or 'num_nodes'.")
	workersFlag := flagSet.Int("workers", executor.DefaultWorkers, "Number of concurrent parse and upload workers.")
	uploadTimeoutFlag := flagSet.Duration("upload-timeout", store.DefaultUploadTimeout, "Timeout for a single record upload.")
	rulesFlag := flagSet.String("rules", "", "Path to an HCL file or directory with interface classification rules.")
	notifyURLFlag := flagSet.String("notify-url", "", "socket.io endpoint that receives progress events.")
	progressFlag := flagSet.Bool("progress", false, "Show a progress bar while parsing.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No input path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected a single INPUT_PATH, got %d: %s", flagSet.NArg(), strings.Join(flagSet.Args(), " "))
	}
	path := flagSet.Arg(0)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if *workersFlag <= 0 {
		return nil, false, usageError("invalid workers: must be a positive number")
	}
	if *uploadTimeoutFlag <= 0 {
		return nil, false, usageError("invalid upload-timeout: must be a positive duration")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		InputPath:         path,
		CredentialsPath:   *credentialsFlag,
		InterfaceOverride: *interfaceFlag,
		RulesPath:         *rulesFlag,
		OutputJSON:        *outputJSONFlag,
		OutputMsgpack:     *outputMsgpackFlag,
		DryRun:            *dryRunFlag,
		Partition:         store.Partition(*partitionFlag),
		UploadTimeout:     *uploadTimeoutFlag,
		NotifyURL:         *notifyURLFlag,
		Progress:          *progressFlag,
		HealthcheckPort:   *healthPortFlag,
		LogFormat:         logFormat,
		LogLevel:          logLevel,
		WorkerCount:       *workersFlag,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
