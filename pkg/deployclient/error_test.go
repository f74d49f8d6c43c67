package deployclient_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nais/opsdeploy/pkg/deployclient"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeZero(t *testing.T) {
	assert.Equal(t, deployclient.ExitCode(0), deployclient.ExitSuccess)
}

func TestErrorExitCode(t *testing.T) {
	assert.Equal(t, deployclient.ExitSuccess, deployclient.ErrorExitCode(nil))
	assert.Equal(t, deployclient.ExitInternalError, deployclient.ErrorExitCode(errors.New("plain")))
	assert.Equal(t, deployclient.ExitInvocationFailure, deployclient.ErrorExitCode(deployclient.ConfigErrorf("missing %s", "thing")))
	assert.Equal(t, deployclient.ExitNotFound, deployclient.ErrorExitCode(deployclient.NotFoundErrorf("gone")))
	assert.Equal(t, deployclient.ExitUnavailable, deployclient.ErrorExitCode(deployclient.TransportError(errors.New("connection refused"))))
}

func TestErrorExitCodeSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("locate target: %w", deployclient.NotFoundErrorf("app %s not found", "abc"))
	assert.Equal(t, deployclient.ExitNotFound, deployclient.ErrorExitCode(err))
	assert.EqualError(t, err, "locate target: app abc not found")
}

func TestIsTransportError(t *testing.T) {
	assert.True(t, deployclient.IsTransportError(deployclient.TransportError(errors.New("reset"))))
	assert.True(t, deployclient.IsTransportError(deployclient.Errorf(deployclient.ExitNoDeployment, "refused")))
	assert.False(t, deployclient.IsTransportError(deployclient.ConfigErrorf("bad")))
	assert.False(t, deployclient.IsTransportError(nil))
}
