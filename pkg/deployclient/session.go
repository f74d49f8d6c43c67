package deployclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	ocodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nais/opsdeploy/pkg/clock"
	"github.com/nais/opsdeploy/pkg/metrics"
	"github.com/nais/opsdeploy/pkg/telemetry"
)

// ClientFactory creates an authenticated client for the remote service.
type ClientFactory func(ctx context.Context, creds *Credentials) (RemoteClient, error)

// Session owns everything resolved during one invocation: credentials, the
// remote client and the deployment target. Nothing outlives the session.
type Session struct {
	Config      *Config
	Environment EnvironmentSource
	VCS         VcsSource
	NewClient   ClientFactory
	Clock       clock.Clock
	Progress    ProgressSink
	// Output receives the request payload when printing is requested. Defaults to standard output.
	Output io.Writer

	client  RemoteClient
	locator *TargetLocator
}

// RunDeployment deploys the current revision of appID and reports the outcome.
// Errors are returned for everything that prevents a verdict: bad configuration,
// an unknown application, or an unreachable remote service.
func (s *Session) RunDeployment(ctx context.Context, appID string, opts Options) (Verdict, error) {
	runID := uuid.New().String()
	env := s.environment()

	ctx, span := telemetry.Tracer().Start(ctx, "Run deployment", trace.WithAttributes(
		telemetry.AttributeRunID.String(runID),
		telemetry.AttributeAppID.String(appID),
	))
	defer span.End()

	fail := func(err error) (Verdict, error) {
		span.SetStatus(ocodes.Error, err.Error())
		span.RecordError(err)
		return Verdict{}, err
	}

	log.Debugf("Starting deployment run %s", runID)

	// Revision problems are configuration errors, reported before any remote call.
	revision, err := ResolveRevision(ctx, opts.Revision, env, s.VCS)
	if err != nil {
		return fail(err)
	}
	span.SetAttributes(telemetry.AttributeRevision.String(revision))

	if len(opts.Comment) == 0 {
		opts.Comment = DeployComment(env, revision)
	}

	client, err := s.remoteClient(ctx, opts)
	if err != nil {
		return fail(err)
	}

	if s.locator == nil {
		s.locator = NewTargetLocator(client)
	}

	target, err := s.locator.Locate(ctx, appID)
	if err != nil {
		return fail(err)
	}
	span.SetAttributes(telemetry.AttributeStackID.String(target.StackID))

	request, err := BuildDeploymentRequest(*target, revision, opts)
	if err != nil {
		return fail(err)
	}

	if opts.PrintPayload || opts.DryRun {
		err = s.printRequest(request)
		if err != nil {
			return fail(err)
		}
	}

	if opts.DryRun {
		log.Infof("Dry run; not creating a deployment of %s at revision %s", appID, revision)
		return Verdict{Outcome: Success, Reason: "dry run"}, nil
	}

	summary := openSummary(env)
	defer summary.Close()

	traceID := telemetry.TraceID(ctx)
	if len(traceID) > 0 {
		log.Debugf("Tracing with traceparent %s", telemetry.TraceParentHeader(ctx))
	}
	summary.printf("## 🚀 OpsWorks deploy")
	summary.printf("")
	summary.printf("* Application: %s (`%s`)", target.Name, target.TargetID)
	summary.printf("* Revision: `%s`", revision)
	summary.printf("* Run ID: %s", runID)
	if len(traceID) > 0 {
		summary.printf("* Trace ID: %s", traceID)
	}
	if runURL := githubWorkflowRunURL(env); len(runURL) > 0 {
		summary.printf("* Workflow run: %s", runURL)
	}

	deployer := &Deployer{
		Client:       client,
		Clock:        s.Clock,
		Progress:     s.Progress,
		PollInterval: opts.PollInterval,
	}

	verdict, err := deployer.Dispatch(ctx, request, opts.WaitUntilDeployed, opts.Timeout)
	if err != nil {
		summary.printf("")
		summary.printf("❌ %s", err)
		metrics.DeploymentFinished(metrics.StatusError, 0)
		return fail(err)
	}

	summary.printf("* Deployment ID: `%s`", verdict.DeploymentID)
	summary.verdict(verdict)
	metrics.DeploymentFinished(verdict.Outcome.String(), verdict.Elapsed)

	span.SetAttributes(telemetry.AttributeOutcome.String(verdict.Outcome.String()))
	if verdict.Outcome != Success {
		span.SetStatus(ocodes.Error, verdict.Reason)
	}

	return verdict, nil
}

// remoteClient resolves credentials and creates the client on first use.
// Credentials are checked before any network traffic takes place.
func (s *Session) remoteClient(ctx context.Context, opts Options) (RemoteClient, error) {
	if s.client != nil {
		return s.client, nil
	}

	cfg := Config{}
	if s.Config != nil {
		cfg = *s.Config
	}
	if len(opts.Region) > 0 {
		cfg.Region = opts.Region
	}

	creds, err := ResolveCredentials(cfg, s.environment())
	if err != nil {
		return nil, err
	}

	log.Infof("Logging in with Access Key: %s", Redact(creds.AccessKeyID))
	log.Debugf("Using region %s", creds.Region)

	if s.NewClient == nil {
		return nil, Errorf(ExitInternalError, "no client factory configured")
	}

	client, err := s.NewClient(ctx, creds)
	if err != nil {
		return nil, ErrorWrap(ExitInvocationFailure, fmt.Errorf("create client: %w", err))
	}

	s.client = client

	return client, nil
}

func (s *Session) printRequest(request *DeploymentRequest) error {
	out := s.Output
	if out == nil {
		out = os.Stdout
	}
	encoded, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return ErrorWrap(ExitInternalError, fmt.Errorf("encode request: %w", err))
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

func (s *Session) environment() EnvironmentSource {
	if s.Environment == nil {
		return OSEnvironment{}
	}
	return s.Environment
}
