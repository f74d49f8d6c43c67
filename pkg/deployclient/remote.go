package deployclient

import (
	"context"
	"encoding/json"
)

// DeploymentStatus is the remote service's view of a deployment.
// Any value other than StatusRunning is terminal.
type DeploymentStatus string

const (
	StatusRunning    DeploymentStatus = "running"
	StatusSuccessful DeploymentStatus = "successful"
	StatusFailed     DeploymentStatus = "failed"
)

func (status DeploymentStatus) Finished() bool {
	return status != StatusRunning
}

// Target is the remote application record a deployment is submitted against.
type Target struct {
	TargetID  string `json:"app_id"`
	StackID   string `json:"stack_id"`
	ShortName string `json:"shortname"`
	Name      string `json:"name,omitempty"`
}

type DeploymentRequest struct {
	TargetID      string          `json:"app_id"`
	StackID       string          `json:"stack_id"`
	Command       string          `json:"command"`
	Comment       string          `json:"comment"`
	CustomPayload json.RawMessage `json:"custom_json"`
	InstanceIDs   []string        `json:"instance_ids,omitempty"`
}

type DeploymentHandle struct {
	DeploymentID string
}

// RemoteClient is the narrow view of the fleet-management service used by this package.
// Implementations map their transport errors onto this package's error kinds.
//
//go:generate mockery --name RemoteClient --inpackage --with-expecter=false --filename mock_remote_client.go
type RemoteClient interface {
	DescribeApplications(ctx context.Context, appID string) ([]Target, error)
	CreateDeployment(ctx context.Context, request *DeploymentRequest) (*DeploymentHandle, error)
	DescribeDeployment(ctx context.Context, deploymentID string) (DeploymentStatus, error)
}

// VcsSource reports which commit is checked out in the working copy.
type VcsSource interface {
	CurrentRevision(ctx context.Context) (string, error)
}
