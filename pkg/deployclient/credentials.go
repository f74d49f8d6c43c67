package deployclient

import (
	"fmt"

	"github.com/nais/opsdeploy/pkg/conftools"
)

const DefaultRegion = "us-east-1"

// Credentials used to sign requests to the remote service.
// Never log the key fields directly; use Redact.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

func (c Credentials) String() string {
	return fmt.Sprintf("access key %s in region %s", Redact(c.AccessKeyID), c.Region)
}

// Redact masks a credential so that only its last four characters remain visible.
func Redact(value string) string {
	return conftools.Redact(value)
}

// ResolveCredentials picks credentials from explicit configuration, falling back to the
// standard AWS environment variables. Both keys are required; the region has a default.
func ResolveCredentials(cfg Config, env EnvironmentSource) (*Credentials, error) {
	creds := &Credentials{
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Region:          cfg.Region,
	}

	if len(creds.AccessKeyID) == 0 {
		creds.AccessKeyID = firstNonEmpty(env, "AWS_ACCESS_KEY_ID")
	}
	if len(creds.AccessKeyID) == 0 {
		return nil, ConfigErrorf("missing access_key_id: %s", ErrAccessKeyRequired)
	}

	if len(creds.SecretAccessKey) == 0 {
		creds.SecretAccessKey = firstNonEmpty(env, "AWS_SECRET_ACCESS_KEY")
	}
	if len(creds.SecretAccessKey) == 0 {
		return nil, ConfigErrorf("missing secret_access_key: %s", ErrSecretKeyRequired)
	}

	if len(creds.Region) == 0 {
		creds.Region = firstNonEmpty(env, "AWS_REGION", "AWS_DEFAULT_REGION")
	}
	if len(creds.Region) == 0 {
		creds.Region = DefaultRegion
	}

	return creds, nil
}
