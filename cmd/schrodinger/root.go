package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/san-kum/schrodinger/internal/logging"
	"github.com/san-kum/schrodinger/internal/storage"
)

const (
	configBaseName = "schrodinger"
	configFileName = configBaseName + ".yaml"
	envPrefix      = "SCHRODINGER"

	dataFlagName     = "data"
	logFileFlagName  = "log-file"
	logLevelFlagName = "log-level"
	verboseFlagName  = "verbose"
	workersFlagName  = "workers"

	dataKey        = "data"
	logFilenameKey = "log.filename"
	logLevelKey    = "log.level"
	logVerboseKey  = "log.verbose"
	logMaxSizeKey  = "log.max_size"
	logMaxAgeKey   = "log.max_age"
	logBackupsKey  = "log.max_backups"
	logCompressKey = "log.compress"
	workersKey     = "search.workers"

	defaultDataDir = ".schrodinger"
)

// app holds what every command shares: the settings layer, the logger and
// the run store.
type app struct {
	v      *viper.Viper
	log    *slog.Logger
	closer io.Closer
}

func newSettings(configDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.SetConfigFile(filepath.Join(configDir, configFileName))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(dataKey, defaultDataDir)
	v.SetDefault(logFilenameKey, logging.DefaultFilename)
	v.SetDefault(logLevelKey, "info")
	v.SetDefault(logVerboseKey, false)
	v.SetDefault(logMaxSizeKey, logging.DefaultMaxSize)
	v.SetDefault(logMaxAgeKey, logging.DefaultMaxAge)
	v.SetDefault(logBackupsKey, logging.DefaultMaxBackups)
	v.SetDefault(logCompressKey, true)
	v.SetDefault(workersKey, 1)
	return v
}

func (a *app) readConfig() error {
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", a.v.ConfigFileUsed(), err)
	}
	return nil
}

func (a *app) setupLogging() {
	a.log, a.closer = logging.Setup(logging.Options{
		Filename:   a.v.GetString(logFilenameKey),
		Level:      a.v.GetString(logLevelKey),
		Verbose:    a.v.GetBool(logVerboseKey),
		MaxSize:    a.v.GetInt(logMaxSizeKey),
		MaxBackups: a.v.GetInt(logBackupsKey),
		MaxAge:     a.v.GetInt(logMaxAgeKey),
		Compress:   a.v.GetBool(logCompressKey),
	})
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}

func (a *app) store() *storage.Store { return storage.New(a.v.GetString(dataKey)) }
func (a *app) workers() int          { return max(a.v.GetInt(workersKey), 1) }

// bindFlag wires a cobra flag to a viper key so config/env values feed it.
func bindFlag(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(v.BindPFlag(key, flag))
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{v: newSettings(".")}

	root := &cobra.Command{
		Use:          "schrodinger",
		Short:        "1-D Schrödinger eigenvalue solver by the shooting method",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.readConfig(); err != nil {
				return err
			}
			a.setupLogging()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.String(dataFlagName, defaultDataDir, "data directory for saved runs")
	bindFlag(a.v, pf.Lookup(dataFlagName), dataKey)
	pf.String(logFileFlagName, logging.DefaultFilename, `log file ("-" for stderr)`)
	bindFlag(a.v, pf.Lookup(logFileFlagName), logFilenameKey)
	pf.String(logLevelFlagName, "info", "log level (debug, info, warn, error or a number)")
	bindFlag(a.v, pf.Lookup(logLevelFlagName), logLevelKey)
	pf.BoolP(verboseFlagName, "v", false, "log at debug level")
	bindFlag(a.v, pf.Lookup(verboseFlagName), logVerboseKey)
	pf.IntP(workersFlagName, "w", 1, "concurrent propagations during energy scans")
	bindFlag(a.v, pf.Lookup(workersFlagName), workersKey)

	root.AddCommand(
		newSolveCmd(a),
		newScanCmd(a),
		newNodesCmd(a),
		newBracketCmd(a),
		newCompareCmd(a),
		newSweepCmd(a),
		newListCmd(a),
		newPlotCmd(a),
		newExportJSONCmd(a),
		newExportSVGCmd(a),
		newPresetsCmd(a),
		newExploreCmd(a),
	)
	return root, a
}

// execute runs root and closes the log afterwards. cobra skips
// PersistentPostRun when a command fails, so the close cannot live there alone.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	defer a.close()
	return root.ExecuteContext(ctx)
}
