// Package opsworks adapts the AWS OpsWorks API to the deployment client.
package opsworks

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsopsworks "github.com/aws/aws-sdk-go-v2/service/opsworks"
	owtypes "github.com/aws/aws-sdk-go-v2/service/opsworks/types"
	smithy "github.com/aws/smithy-go"
	log "github.com/sirupsen/logrus"

	"github.com/nais/opsdeploy/pkg/deployclient"
)

// API is the subset of the OpsWorks SDK client used for deployments.
type API interface {
	DescribeApps(ctx context.Context, params *awsopsworks.DescribeAppsInput, optFns ...func(*awsopsworks.Options)) (*awsopsworks.DescribeAppsOutput, error)
	CreateDeployment(ctx context.Context, params *awsopsworks.CreateDeploymentInput, optFns ...func(*awsopsworks.Options)) (*awsopsworks.CreateDeploymentOutput, error)
	DescribeDeployments(ctx context.Context, params *awsopsworks.DescribeDeploymentsInput, optFns ...func(*awsopsworks.Options)) (*awsopsworks.DescribeDeploymentsOutput, error)
}

type Config struct {
	// EndpointURL overrides the regional service endpoint.
	EndpointURL string
	// MaxAttempts bounds SDK-level retries of each individual call.
	MaxAttempts int
}

// Client implements deployclient.RemoteClient on top of OpsWorks.
type Client struct {
	api API
}

var _ deployclient.RemoteClient = &Client{}

// New creates an OpsWorks client authenticated with static credentials.
func New(creds *deployclient.Credentials, cfg Config) *Client {
	options := awsopsworks.Options{
		Region:      creds.Region,
		Credentials: credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, ""),
	}
	if cfg.MaxAttempts > 0 {
		options.Retryer = retry.AddWithMaxAttempts(retry.NewStandard(), cfg.MaxAttempts)
	}
	if len(cfg.EndpointURL) > 0 {
		log.Debugf("Using OpsWorks endpoint %s", cfg.EndpointURL)
		options.BaseEndpoint = aws.String(cfg.EndpointURL)
	}
	return NewFromAPI(awsopsworks.New(options))
}

func NewFromAPI(api API) *Client {
	return &Client{api: api}
}

// Factory returns a deployclient.ClientFactory creating clients with the given configuration.
func Factory(cfg Config) deployclient.ClientFactory {
	return func(ctx context.Context, creds *deployclient.Credentials) (deployclient.RemoteClient, error) {
		if creds == nil {
			return nil, fmt.Errorf("no credentials")
		}
		return New(creds, cfg), nil
	}
}

func (c *Client) DescribeApplications(ctx context.Context, appID string) ([]deployclient.Target, error) {
	output, err := c.api.DescribeApps(ctx, &awsopsworks.DescribeAppsInput{
		AppIds: []string{appID},
	})
	if err != nil {
		return nil, mapError("describe apps", err)
	}

	targets := make([]deployclient.Target, 0, len(output.Apps))
	for _, app := range output.Apps {
		targets = append(targets, deployclient.Target{
			TargetID:  aws.ToString(app.AppId),
			StackID:   aws.ToString(app.StackId),
			ShortName: aws.ToString(app.Shortname),
			Name:      aws.ToString(app.Name),
		})
	}

	return targets, nil
}

func (c *Client) CreateDeployment(ctx context.Context, request *deployclient.DeploymentRequest) (*deployclient.DeploymentHandle, error) {
	input := &awsopsworks.CreateDeploymentInput{
		AppId:   aws.String(request.TargetID),
		StackId: aws.String(request.StackID),
		Command: &owtypes.DeploymentCommand{
			Name: owtypes.DeploymentCommandName(request.Command),
		},
		Comment:    aws.String(request.Comment),
		CustomJson: aws.String(string(request.CustomPayload)),
	}
	if len(request.InstanceIDs) > 0 {
		input.InstanceIds = request.InstanceIDs
	}

	output, err := c.api.CreateDeployment(ctx, input)
	if err != nil {
		return nil, mapError("create deployment", err)
	}

	deploymentID := aws.ToString(output.DeploymentId)
	if len(deploymentID) == 0 {
		return nil, deployclient.TransportError(fmt.Errorf("create deployment: no deployment ID in response"))
	}

	return &deployclient.DeploymentHandle{DeploymentID: deploymentID}, nil
}

func (c *Client) DescribeDeployment(ctx context.Context, deploymentID string) (deployclient.DeploymentStatus, error) {
	output, err := c.api.DescribeDeployments(ctx, &awsopsworks.DescribeDeploymentsInput{
		DeploymentIds: []string{deploymentID},
	})
	if err != nil {
		return "", mapError("describe deployments", err)
	}

	if len(output.Deployments) == 0 {
		return "", deployclient.TransportError(fmt.Errorf("describe deployments: deployment %s not in response", deploymentID))
	}

	return deployclient.DeploymentStatus(aws.ToString(output.Deployments[0].Status)), nil
}

// mapError translates SDK errors into the deployment client's error taxonomy.
// Context errors stay transport errors; the caller decides whether they mean a timeout.
func mapError(op string, err error) error {
	var notFound *owtypes.ResourceNotFoundException
	var validation *owtypes.ValidationException
	var apiErr smithy.APIError

	switch {
	case errors.As(err, &notFound):
		return deployclient.NotFoundErrorf("%s: %s", op, notFound.ErrorMessage())
	case errors.As(err, &validation):
		return deployclient.ConfigErrorf("%s: %s", op, validation.ErrorMessage())
	case errors.As(err, &apiErr):
		return deployclient.TransportError(fmt.Errorf("%s: OpsWorks error %s: %s", op, apiErr.ErrorCode(), apiErr.ErrorMessage()))
	default:
		return deployclient.TransportError(fmt.Errorf("%s: %w", op, err))
	}
}
