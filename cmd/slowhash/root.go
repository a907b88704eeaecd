package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/theflywheel/slowhash"
	"github.com/theflywheel/slowhash/config"
	"github.com/theflywheel/slowhash/metrics"
	"go.uber.org/zap"
)

type rootFlags struct {
	configPath string
	verbose    bool
	metrics    bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "slowhash",
		Short:         "Exercise a double hashing string table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "TOML file with table settings")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log every resize")
	root.PersistentFlags().BoolVar(&flags.metrics, "metrics", false, "print Prometheus metrics on exit")

	root.AddCommand(newRunCmd(&flags), newDemoCmd(&flags))
	return root
}

// session is a table plus the logging and metrics wired around it.
type session struct {
	table  *slowhash.Table
	logger *zap.Logger
	reg    *prometheus.Registry
}

func newSession(flags *rootFlags) (*session, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		if cfg, err = config.Load(flags.configPath); err != nil {
			return nil, err
		}
	}

	var logger *zap.Logger
	var err error
	if flags.verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}

	opts := append(cfg.Options(), slowhash.WithLogger(logger))
	s := &session{logger: logger}
	if flags.metrics {
		s.reg = prometheus.NewRegistry()
		opts = append(opts, slowhash.WithObserver(metrics.NewCollector(s.reg)))
	}
	s.table = slowhash.New(opts...)
	return s, nil
}

// close flushes the logger and, when metrics are enabled, writes them to w.
func (s *session) close(w io.Writer) error {
	_ = s.logger.Sync()
	if s.reg == nil {
		return nil
	}
	families, err := s.reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}
