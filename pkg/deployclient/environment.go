package deployclient

import (
	"os"
)

// EnvironmentSource looks up process environment variables.
type EnvironmentSource interface {
	Lookup(name string) (string, bool)
}

type OSEnvironment struct{}

func (OSEnvironment) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnvironment is an EnvironmentSource backed by a fixed set of variables.
type MapEnvironment map[string]string

func (env MapEnvironment) Lookup(name string) (string, bool) {
	value, ok := env[name]
	return value, ok
}

// Environment variables holding the commit being built, in order of preference.
var revisionVariables = []string{
	"GITHUB_SHA",
	"TRAVIS_COMMIT",
	"CI_COMMIT_SHA",
	"GIT_COMMIT",
}

// Environment variables holding the CI build number, in order of preference.
var buildNumberVariables = []string{
	"TRAVIS_BUILD_NUMBER",
	"GITHUB_RUN_NUMBER",
	"CI_PIPELINE_IID",
	"BUILD_NUMBER",
}

// firstNonEmpty returns the value of the first variable that is set to a non-empty value.
func firstNonEmpty(env EnvironmentSource, names ...string) string {
	for _, name := range names {
		value, ok := env.Lookup(name)
		if ok && len(value) > 0 {
			return value
		}
	}
	return ""
}

// ciSystem names the CI system this process is running under, if any.
func ciSystem(env EnvironmentSource) string {
	detect := func(name string) bool {
		value, ok := env.Lookup(name)
		return ok && len(value) > 0
	}
	switch {
	case detect("TRAVIS"):
		return "Travis CI"
	case detect("GITHUB_ACTIONS"):
		return "GitHub Actions"
	case detect("GITLAB_CI"):
		return "GitLab CI"
	case detect("JENKINS_URL"):
		return "Jenkins"
	default:
		return ""
	}
}

// githubWorkflowRunURL builds a link to the running GitHub Actions workflow.
func githubWorkflowRunURL(env EnvironmentSource) string {
	server, ok := env.Lookup("GITHUB_SERVER_URL")
	if !ok {
		return ""
	}
	repo, ok := env.Lookup("GITHUB_REPOSITORY")
	if !ok {
		return ""
	}
	runid, ok := env.Lookup("GITHUB_RUN_ID")
	if !ok {
		return ""
	}
	return server + "/" + repo + "/actions/runs/" + runid
}
