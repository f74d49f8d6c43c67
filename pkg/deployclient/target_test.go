package deployclient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nais/opsdeploy/pkg/deployclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLocateSingleMatchIsCached(t *testing.T) {
	client := deployclient.NewMockRemoteClient(t)
	client.On("DescribeApplications", mock.Anything, "app-1").Return([]deployclient.Target{testTarget()}, nil).Once()

	locator := deployclient.NewTargetLocator(client)

	first, err := locator.Locate(context.Background(), "app-1")
	assert.NoError(t, err)
	assert.Equal(t, testTarget(), *first)

	second, err := locator.Locate(context.Background(), "app-1")
	assert.NoError(t, err)
	assert.Same(t, first, second)

	client.AssertNumberOfCalls(t, "DescribeApplications", 1)
}

func TestLocateMatchCountNotOne(t *testing.T) {
	for _, targets := range [][]deployclient.Target{
		nil,
		{},
		{testTarget(), testTarget()},
	} {
		client := deployclient.NewMockRemoteClient(t)
		client.On("DescribeApplications", mock.Anything, "app-1").Return(targets, nil).Once()

		target, err := deployclient.NewTargetLocator(client).Locate(context.Background(), "app-1")

		assert.Nil(t, target)
		assert.EqualError(t, err, "app app-1 not found")
		assert.Equal(t, deployclient.ExitNotFound, deployclient.ErrorExitCode(err))
	}
}

func TestLocateFailureIsNotCached(t *testing.T) {
	client := deployclient.NewMockRemoteClient(t)
	client.On("DescribeApplications", mock.Anything, "app-1").Return(nil, deployclient.TransportError(errors.New("no route to host"))).Once()
	client.On("DescribeApplications", mock.Anything, "app-1").Return([]deployclient.Target{testTarget()}, nil).Once()

	locator := deployclient.NewTargetLocator(client)

	_, err := locator.Locate(context.Background(), "app-1")
	assert.Equal(t, deployclient.ExitUnavailable, deployclient.ErrorExitCode(err))

	target, err := locator.Locate(context.Background(), "app-1")
	assert.NoError(t, err)
	assert.Equal(t, "stack-1", target.StackID)
}
