package deployclient

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ResolveRevision determines the commit to deploy.
// The first non-empty value wins: explicit option, CI environment, then the checked out VCS revision.
func ResolveRevision(ctx context.Context, explicit string, env EnvironmentSource, vcs VcsSource) (string, error) {
	if revision := strings.TrimSpace(explicit); len(revision) > 0 {
		return revision, nil
	}

	if revision := strings.TrimSpace(firstNonEmpty(env, revisionVariables...)); len(revision) > 0 {
		log.Debugf("Using revision %s from CI environment", revision)
		return revision, nil
	}

	if vcs == nil {
		return "", ConfigErrorf("unable to determine revision; specify --revision")
	}

	revision, err := vcs.CurrentRevision(ctx)
	if err != nil {
		return "", ConfigErrorf("unable to determine revision; specify --revision: %s", err)
	}

	revision = strings.TrimSpace(revision)
	if len(revision) == 0 {
		return "", ConfigErrorf("unable to determine revision; specify --revision")
	}

	log.Debugf("Using revision %s from working copy", revision)
	return revision, nil
}

// DeployComment describes the CI build that triggered the deployment.
func DeployComment(env EnvironmentSource, revision string) string {
	build := firstNonEmpty(env, buildNumberVariables...)
	if len(build) == 0 {
		build = revision
	}
	system := ciSystem(env)
	if len(system) == 0 {
		system = "opsdeploy"
	}
	return fmt.Sprintf("Deploy build %s via %s", build, system)
}
