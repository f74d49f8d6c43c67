package conftools_test

import (
	"testing"

	"github.com/nais/opsdeploy/pkg/conftools"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	for _, testCase := range []struct {
		input    string
		expected string
	}{
		{"ABCDEFGH1234", "****************1234"},
		{"AKIAIOSFODNN7EXAMPLEAKIAIOSFODNN7EXAMPLE", "****************MPLE"},
		{"1234", "****************1234"},
		{"abc", "********************"},
		{"", "********************"},
	} {
		redacted := conftools.Redact(testCase.input)
		assert.Equal(t, testCase.expected, redacted, "input %q", testCase.input)
		assert.Len(t, redacted, 20)
	}
}

func TestFormatRedactsSecrets(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("secret-access-key", "wJalrXUtnFEMIK7MDENGbPxRfiCYEXAMPLEKEY")
	viper.Set("region", "eu-north-1")

	printed := conftools.Format([]string{"secret-access-key"})

	assert.Equal(t, []string{
		"region: eu-north-1",
		"secret-access-key: ****************EKEY",
	}, printed)
}
