package deployclient

import (
	"context"
	"errors"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	ocodes "go.opentelemetry.io/otel/codes"

	"github.com/nais/opsdeploy/pkg/clock"
	"github.com/nais/opsdeploy/pkg/metrics"
	"github.com/nais/opsdeploy/pkg/telemetry"
)

// Deployer submits deployment requests and optionally waits for them to finish.
// A Deployer tracks a single deployment at a time.
type Deployer struct {
	Client       RemoteClient
	Clock        clock.Clock
	Progress     ProgressSink
	PollInterval time.Duration
}

// Submit creates the deployment. Submission is never retried here, since
// a second attempt could create a duplicate deployment.
func (d *Deployer) Submit(ctx context.Context, request *DeploymentRequest) (*DeploymentHandle, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "Create deployment")
	defer span.End()

	handle, err := d.Client.CreateDeployment(ctx, request)
	if err != nil {
		err = submissionError(err)
		span.SetStatus(ocodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(telemetry.AttributeDeploymentID.String(handle.DeploymentID))
	log.Infof("Deployment created: %s", handle.DeploymentID)

	return handle, nil
}

// Dispatch submits the request, then waits up to timeout for a terminal status if wait is set.
// Without wait, a successful submission is a successful verdict.
func (d *Deployer) Dispatch(ctx context.Context, request *DeploymentRequest, wait bool, timeout time.Duration) (Verdict, error) {
	// Root span for the deployment itself.
	// All sub-spans must be created from this context.
	ctx, span := telemetry.Tracer().Start(ctx, "Send deploy request and wait for completion")
	defer span.End()

	handle, err := d.Submit(ctx, request)
	if err != nil {
		span.SetStatus(ocodes.Error, err.Error())
		span.RecordError(err)
		return Verdict{}, err
	}

	span.SetAttributes(telemetry.AttributeDeploymentID.String(handle.DeploymentID))

	if !wait {
		verdict := Submitted(handle.DeploymentID)
		logVerdict(verdict)
		return verdict, nil
	}

	if timeout <= 0 {
		timeout = DefaultDeployTimeout
	}

	verdict, err := d.wait(ctx, handle, timeout)
	if err != nil {
		span.SetStatus(ocodes.Error, err.Error())
		span.RecordError(err)
		return Verdict{}, err
	}

	span.SetAttributes(telemetry.AttributeOutcome.String(verdict.Outcome.String()))
	if verdict.Outcome != Success {
		span.SetStatus(ocodes.Error, verdict.Reason)
	}
	logVerdict(verdict)

	return verdict, nil
}

// wait polls the deployment until it leaves the running state, the timeout
// is reached, or ctx is cancelled. Timing out does not cancel the remote deployment.
func (d *Deployer) wait(ctx context.Context, handle *DeploymentHandle, timeout time.Duration) (Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clk := d.clock()
	interval := d.pollInterval()
	progress := d.progress()
	start := clk.Now()
	markers := 0

	defer func() {
		if markers > 0 {
			progress.Emit("\n")
		}
	}()

	log.Infof("Waiting up to %s for deployment %s to complete...", timeout, handle.DeploymentID)

	for {
		status, err := d.describe(ctx, handle.DeploymentID)
		metrics.StatusPoll(string(status), err)
		if err != nil {
			if ctx.Err() != nil {
				return TimedOut(handle.DeploymentID, clk.Now().Sub(start), ctx.Err()), nil
			}
			return Verdict{}, pollError(err)
		}

		elapsed := clk.Now().Sub(start)

		if status.Finished() {
			return Classify(handle.DeploymentID, status, elapsed), nil
		}

		if elapsed >= timeout {
			return TimedOut(handle.DeploymentID, elapsed, nil), nil
		}

		if ctx.Err() != nil {
			return TimedOut(handle.DeploymentID, elapsed, ctx.Err()), nil
		}

		progress.Emit(ProgressMarker)
		markers++

		select {
		case <-ctx.Done():
			return TimedOut(handle.DeploymentID, clk.Now().Sub(start), ctx.Err()), nil
		case <-clk.After(min(interval, timeout-elapsed)):
		}
	}
}

// describe queries the deployment status, giving up as soon as ctx is done
// even if the client does not return.
func (d *Deployer) describe(ctx context.Context, deploymentID string) (DeploymentStatus, error) {
	type result struct {
		status DeploymentStatus
		err    error
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	results := make(chan result, 1)
	go func() {
		status, err := d.Client.DescribeDeployment(ctx, deploymentID)
		results <- result{status: status, err: err}
	}()

	select {
	case r := <-results:
		return r.status, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (d *Deployer) clock() clock.Clock {
	if d.Clock == nil {
		return clock.Real()
	}
	return d.Clock
}

func (d *Deployer) pollInterval() time.Duration {
	if d.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return d.PollInterval
}

func (d *Deployer) progress() ProgressSink {
	if d.Progress == nil {
		return NewProgressWriter(io.Discard)
	}
	return d.Progress
}

// submissionError classifies a failed CreateDeployment call. Transport failures here
// mean that no deployment exists, which is reported with its own exit code.
func submissionError(err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return ErrorWrap(ExitNoDeployment, err)
	}
	if e.Code == ExitUnavailable {
		return ErrorWrap(ExitNoDeployment, err)
	}
	return err
}

// pollError classifies a failed status query. The deployment exists, but its outcome is unknown.
func pollError(err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return TransportError(err)
	}
	return err
}
