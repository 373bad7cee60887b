// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/netapp/xtremio-driver/config"
	. "github.com/netapp/xtremio-driver/logging"
	drivers "github.com/netapp/xtremio-driver/storage_drivers"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
	"github.com/netapp/xtremio-driver/utils/errors"
)

const (
	FormatJSON = "json"
	FormatName = "name"
	FormatWide = "wide"
	FormatYAML = "yaml"

	ExitCodeSuccess = 0
	ExitCodeFailure = 1
	ExitCodeUsage   = 2

	// EnvConfig names the backend configuration file when --config is not given
	EnvConfig = "XTREMIO_CONFIG"
)

var (
	ExitCode int

	Debug        bool
	OutputFormat string
	ConfigPath   string
	LogFormat    string

	// AppFs is where the backend configuration and CA bundle are read from.
	AppFs = afero.NewOsFs()

	// apiTransport replaces the HTTP transport used to reach the array.
	apiTransport http.RoundTripper
)

var RootCmd = &cobra.Command{
	SilenceUsage: true,
	Use:          "xtremioctl",
	Short:        "A CLI tool for Dell EMC XtremIO arrays",
	Long:         `A CLI tool for inspecting and managing XtremIO volumes through the XtremIO block storage driver`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initCmdLogging()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&Debug, "debug", "d", false, "Debug output")
	RootCmd.PersistentFlags().StringVarP(&OutputFormat, "output", "o", "",
		"Output format. One of json|yaml|name|wide|ps (default)")
	RootCmd.PersistentFlags().StringVarP(&ConfigPath, "config", "c", "",
		"Backend configuration file, JSON or YAML (default $"+EnvConfig+")")
	RootCmd.PersistentFlags().StringVar(&LogFormat, "log-format", TextFormat, "Log format. One of text|json")
}

func initCmdLogging() error {
	if err := InitLogLevel(Debug, "warn"); err != nil {
		return err
	}
	if err := InitLogFormat(LogFormat); err != nil {
		return errors.InvalidInputError("%v", err)
	}
	switch OutputFormat {
	case "", FormatJSON, FormatYAML, FormatName, FormatWide:
		return nil
	default:
		return errors.InvalidInputError("unknown output format %q", OutputFormat)
	}
}

// cliContext returns a request context for one CLI invocation.
func cliContext(workflow Workflow) context.Context {
	ctx := GenerateRequestContext(context.Background(), "", ContextSourceCLI, workflow, LogLayerCLI)
	return NewContextBuilder(ctx).WithClient(ContextRequestClientCLI).BuildContext()
}

// loadDriver reads the backend configuration and returns a driver connected to the array it names.
func loadDriver(ctx context.Context) (*xtremio.SANStorageDriver, error) {
	path := ConfigPath
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return nil, errors.InvalidInputError("a backend configuration file is required; use --config or $%s", EnvConfig)
	}

	configBytes, err := afero.ReadFile(AppFs, path)
	if err != nil {
		return nil, fmt.Errorf("could not read backend configuration %s; %v", path, err)
	}

	commonConfig, err := drivers.ValidateCommonSettings(ctx, string(configBytes))
	if err != nil {
		return nil, errors.InvalidInputError("invalid backend configuration %s; %v", path, err)
	}
	protocol, ok := config.ProtocolForDriverName(commonConfig.StorageDriverName)
	if !ok {
		return nil, errors.InvalidInputError("unsupported storage driver %q; expected %s or %s",
			commonConfig.StorageDriverName, config.XtremIOISCSIStorageDriverName, config.XtremIOFCStorageDriverName)
	}

	d, err := xtremio.NewDriverForProtocol(protocol)
	if err != nil {
		return nil, err
	}
	d.Fs = AppFs
	d.Transport = apiTransport

	if err = d.Initialize(ctx, config.ContextCLI, string(configBytes), nil); err != nil {
		return nil, err
	}
	Logc(ctx).WithFields(LogFields{
		"driver":  d.Name(),
		"cluster": d.API.ClusterName(),
	}).Debug("Connected to array.")
	return d, nil
}

// arrayClient returns the REST client of an initialized driver.
func arrayClient(d *xtremio.SANStorageDriver) (*api.Client, error) {
	client, ok := d.API.(*api.Client)
	if !ok {
		return nil, errors.DriverError("the driver is not using the XMS REST client")
	}
	return client, nil
}

func SetExitCodeFromError(err error) {
	ExitCode = GetExitCodeFromError(err)
}

func GetExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.IsInvalidInputError(err):
		return ExitCodeUsage
	default:
		return ExitCodeFailure
	}
}
