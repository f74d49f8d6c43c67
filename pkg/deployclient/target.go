package deployclient

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// TargetLocator resolves an application identifier to its deployable target.
// The first successful lookup is cached for the lifetime of the locator.
type TargetLocator struct {
	client RemoteClient
	appID  string
	target *Target
}

func NewTargetLocator(client RemoteClient) *TargetLocator {
	return &TargetLocator{client: client}
}

func (l *TargetLocator) Locate(ctx context.Context, appID string) (*Target, error) {
	if l.target != nil && l.appID == appID {
		return l.target, nil
	}

	targets, err := l.client.DescribeApplications(ctx, appID)
	if err != nil {
		return nil, err
	}

	// Zero and multiple matches are the same failure.
	if len(targets) != 1 {
		return nil, NotFoundErrorf("app %s not found", appID)
	}

	target := targets[0]
	log.Infof("Found application %q (shortname %q) in stack %s", target.Name, target.ShortName, target.StackID)

	l.appID = appID
	l.target = &target

	return l.target, nil
}
