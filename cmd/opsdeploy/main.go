package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/nais/opsdeploy/pkg/clock"
	"github.com/nais/opsdeploy/pkg/conftools"
	"github.com/nais/opsdeploy/pkg/deployclient"
	"github.com/nais/opsdeploy/pkg/metrics"
	"github.com/nais/opsdeploy/pkg/opsworks"
	"github.com/nais/opsdeploy/pkg/telemetry"
	"github.com/nais/opsdeploy/pkg/vcs"
	"github.com/nais/opsdeploy/pkg/version"
)

func main() {
	err := run()
	if err == nil {
		return
	}
	code := deployclient.ErrorExitCode(err)
	if code == deployclient.ExitInvocationFailure {
		flag.Usage()
	}
	log.Errorf("fatal: %s", err)
	os.Exit(int(code))
}

func run() error {
	// Configuration
	deployclient.InitConfig()
	cfg, err := deployclient.LoadConfig()
	if err != nil {
		return deployclient.ErrorWrap(deployclient.ExitInvocationFailure, err)
	}

	// Logging
	deployclient.SetupLogging(*cfg)

	// Welcome
	log.Infof("OpsWorks deploy %s", version.Version())
	ts, err := version.BuildTime()
	if err == nil {
		log.Infof("This version was built %s", ts.Local())
	}

	if path := deployclient.ConfigFile(); len(path) > 0 {
		log.Debugf("Read configuration from %s", path)
	}
	for _, line := range conftools.Format(deployclient.SecretKeys) {
		log.Debug(line)
	}

	err = cfg.Validate()
	if err != nil {
		return deployclient.ErrorWrap(deployclient.ExitInvocationFailure, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	tracerProvider, err := telemetry.New(ctx, "opsdeploy", cfg.OpenTelemetryCollectorURL)
	if err != nil {
		log.Warnf("Tracing disabled: %s", err)
	} else {
		defer func() {
			err := tracerProvider.Shutdown(context.Background())
			if err != nil {
				log.Error(err)
			}
		}()
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	var progress io.Writer = os.Stderr
	if cfg.Quiet {
		progress = io.Discard
	}

	session := &deployclient.Session{
		Config:      cfg,
		Environment: deployclient.OSEnvironment{},
		VCS:         vcs.NewGit(cfg.GitDirectory),
		NewClient: opsworks.Factory(opsworks.Config{
			EndpointURL: cfg.EndpointURL,
			MaxAttempts: cfg.RetryMaxAttempts,
		}),
		Clock:    clock.Real(),
		Progress: deployclient.NewProgressWriter(progress),
		Output:   os.Stdout,
	}

	verdict, err := session.RunDeployment(ctx, cfg.AppID, opts)

	if len(cfg.PushgatewayURL) > 0 && !cfg.DryRun {
		pushErr := metrics.Push(context.Background(), cfg.PushgatewayURL, cfg.AppID)
		if pushErr != nil {
			log.Warnf("Unable to push metrics: %s", pushErr)
		}
	}

	if err != nil {
		return err
	}

	return verdict.Err()
}
