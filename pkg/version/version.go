// Build information, injected at link time:
//
//	go build -ldflags "-X github.com/nais/opsdeploy/pkg/version.version=$(git describe) -X github.com/nais/opsdeploy/pkg/version.buildTime=$(date +%s)"
package version

import (
	"strconv"
	"time"
)

var (
	version   = "unknown"
	buildTime = "0"
)

func Version() string {
	return version
}

// BuildTime returns the time this binary was built, as recorded by the linker.
func BuildTime() (time.Time, error) {
	epoch, err := strconv.ParseInt(buildTime, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(epoch, 0), nil
}
