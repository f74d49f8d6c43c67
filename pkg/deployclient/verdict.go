package deployclient

import (
	"fmt"
	"time"
)

type Outcome int

const (
	Success Outcome = iota
	Failure
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Verdict is the final result of a deployment run.
type Verdict struct {
	Outcome      Outcome
	DeploymentID string
	Status       DeploymentStatus
	Reason       string
	Elapsed      time.Duration
}

// Submitted is the verdict for a deployment that was created, when the caller does not wait for it.
func Submitted(deploymentID string) Verdict {
	return Verdict{
		Outcome:      Success,
		DeploymentID: deploymentID,
		Reason:       fmt.Sprintf("deployment %s created; not waiting for completion", deploymentID),
	}
}

// Classify maps a terminal status to a verdict.
// Only the exact status "successful" is a success.
func Classify(deploymentID string, status DeploymentStatus, elapsed time.Duration) Verdict {
	verdict := Verdict{
		DeploymentID: deploymentID,
		Status:       status,
		Elapsed:      elapsed,
	}
	if status == StatusSuccessful {
		verdict.Outcome = Success
		verdict.Reason = fmt.Sprintf("deployment %s successful", deploymentID)
	} else {
		verdict.Outcome = Failure
		verdict.Reason = fmt.Sprintf("deployment %s finished with status %q", deploymentID, status)
	}
	return verdict
}

// TimedOut is the verdict for a deployment whose outcome is unknown because we stopped waiting.
// The remote deployment is left running.
func TimedOut(deploymentID string, elapsed time.Duration, cause error) Verdict {
	reason := fmt.Sprintf("could not finish deployment %s in %s", deploymentID, elapsed.Round(time.Second))
	if cause != nil {
		reason = fmt.Sprintf("%s: %s", reason, cause)
	}
	return Verdict{
		Outcome:      Timeout,
		DeploymentID: deploymentID,
		Status:       StatusRunning,
		Reason:       reason,
		Elapsed:      elapsed,
	}
}

// Err converts the verdict into an error carrying the process exit code, or nil on success.
func (v Verdict) Err() error {
	switch v.Outcome {
	case Success:
		return nil
	case Timeout:
		return Errorf(ExitTimeout, "Timeout: %s", v.Reason)
	default:
		return Errorf(ExitDeploymentFailure, "Deployment failed: %s", v.Reason)
	}
}
