package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildTime(t *testing.T) {
	buildTime = "1726050395"
	defer func() { buildTime = "0" }()

	ts, err := BuildTime()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.September, 11, 10, 26, 35, 0, time.UTC), ts.UTC())
}

func TestBuildTimeMalformed(t *testing.T) {
	buildTime = "yesterday"
	defer func() { buildTime = "0" }()

	_, err := BuildTime()
	assert.Error(t, err)
}
