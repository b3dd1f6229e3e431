package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"twodct"
	"twodct/band"
	"twodct/config"
	"twodct/metrics"
	"twodct/report"
)

type runFlags struct {
	setup       string
	job         string
	modes       string
	out         string
	logLevel    string
	metricsAddr string
	charts      bool
	plots       bool
	bands       bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "twodct",
		Short:         "Valley-resolved transport through layered 2D heterostructures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var f runFlags
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep energy and kx for every job and write PTR results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), v, f)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.setup, "setup", "setup.yaml", "setup file (YAML)")
	fs.StringVar(&f.job, "job", "job.yaml", "job file (YAML)")
	fs.StringVar(&f.modes, "modes", "modes", "directory with <job>_kx=<kx>.yaml mode data")
	fs.StringVar(&f.out, "out", "output", "output directory")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	fs.BoolVar(&f.charts, "charts", false, "also write HTML charts")
	fs.BoolVar(&f.plots, "plots", false, "also write PNG plots")
	fs.BoolVar(&f.bands, "bands", false, "also write per-layer band CSV")
	fs.Int("threads", 0, "worker pool size (overrides cpu_threads)")
	bindFlags(v, fs)
	return cmd
}

// bindFlags 显式给出的命令行参数覆盖设置文件
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	_ = v.BindPFlag("cpu_threads", fs.Lookup("threads"))
}

func run(ctx context.Context, v *viper.Viper, f runFlags) error {
	logger, err := config.NewLogger(f.logLevel)
	if err != nil {
		return err
	}
	setup, err := config.Load(v, f.setup)
	if err != nil {
		return err
	}
	jobs, err := config.LoadJobs(f.job)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if f.metricsAddr != "" {
		srv := &http.Server{Addr: f.metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
		defer srv.Close()
	}

	solver, err := twodct.NewSolver(setup, jobs, band.FileSource{Dir: f.modes},
		twodct.WithLogger(logger),
		twodct.WithWriter(&report.Writer{Root: f.out, Charts: f.charts, Plots: f.plots}),
		twodct.WithBands(f.bands),
		twodct.WithMetrics(m),
	)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"jobs":      len(jobs),
		"threads":   setup.CPUThreads,
		"direction": setup.Direction,
		"material":  setup.Material,
	}).Info("starting")
	_, err = solver.Run(ctx)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "twodct:", err)
		os.Exit(1)
	}
}
