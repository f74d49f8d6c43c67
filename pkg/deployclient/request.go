package deployclient

import (
	"encoding/json"
	"fmt"
	"time"
)

const DeployCommand = "deploy"

// Options for a single deployment run.
type Options struct {
	WaitUntilDeployed bool
	InstanceIDs       []string
	// Migrate defaults to false when absent.
	Migrate bool
	// CustomPayload replaces the default payload when non-nil.
	CustomPayload json.RawMessage
	Region        string
	// Timeout bounds the wait for completion. Zero means DefaultDeployTimeout.
	Timeout time.Duration
	// PollInterval is the time between status queries. Zero means DefaultPollInterval.
	PollInterval time.Duration
	Revision     string
	Comment      string
	DryRun       bool
	PrintPayload bool
}

type scmPayload struct {
	Revision string `json:"revision"`
}

type appPayload struct {
	Migrate bool       `json:"migrate"`
	SCM     scmPayload `json:"scm"`
}

type defaultPayload struct {
	Deploy map[string]appPayload `json:"deploy"`
}

// BuildDeploymentRequest assembles the request for target at revision.
// It performs no I/O; identical input yields identical requests.
func BuildDeploymentRequest(target Target, revision string, opts Options) (*DeploymentRequest, error) {
	if len(revision) == 0 {
		return nil, ConfigErrorf("revision must not be empty")
	}

	payload := opts.CustomPayload
	if payload == nil {
		var err error
		payload, err = json.Marshal(defaultPayload{
			Deploy: map[string]appPayload{
				target.ShortName: {
					Migrate: opts.Migrate,
					SCM:     scmPayload{Revision: revision},
				},
			},
		})
		if err != nil {
			return nil, ErrorWrap(ExitInternalError, fmt.Errorf("encode default payload: %w", err))
		}
	}

	comment := opts.Comment
	if len(comment) == 0 {
		comment = fmt.Sprintf("Deploy build %s via opsdeploy", revision)
	}

	request := &DeploymentRequest{
		TargetID:      target.TargetID,
		StackID:       target.StackID,
		Command:       DeployCommand,
		Comment:       comment,
		CustomPayload: append(json.RawMessage(nil), payload...),
	}

	if len(opts.InstanceIDs) > 0 {
		request.InstanceIDs = append([]string(nil), opts.InstanceIDs...)
	}

	return request, nil
}
