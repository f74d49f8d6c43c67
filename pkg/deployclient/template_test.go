package deployclient_test

import (
	"testing"

	"github.com/nais/opsdeploy/pkg/deployclient"
	"github.com/stretchr/testify/assert"
)

func TestPayloadFileTemplating(t *testing.T) {
	ctx := deployclient.TemplateVariables{
		"shortname":   "web",
		"environment": "production",
	}
	payload, err := deployclient.PayloadFileAsJSON("testdata/payload.yaml", ctx)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"deploy":{"web":{"environment":"production","migrate":true}}}`, string(payload))
}

func TestPayloadFileJSON(t *testing.T) {
	payload, err := deployclient.PayloadFileAsJSON("testdata/payload.json", nil)
	assert.NoError(t, err)
	assert.Equal(t, `{"deploy":{"api":{"scm":{"revision":"v1.2.3"}}}}`, string(payload))
}

func TestPayloadFileErrors(t *testing.T) {
	for _, testCase := range []struct {
		path     string
		code     deployclient.ExitCode
		errorMsg string
	}{
		{"testdata/does-not-exist.yaml", deployclient.ExitInvocationFailure, "open file"},
		{"testdata/multi_document.yaml", deployclient.ExitInvocationFailure, "exactly one document"},
		{"testdata/list.yaml", deployclient.ExitInvocationFailure, "must be a JSON object"},
	} {
		payload, err := deployclient.PayloadFileAsJSON(testCase.path, nil)
		assert.Nil(t, payload)
		assert.Error(t, err)
		assert.Equal(t, testCase.code, deployclient.ErrorExitCode(err), testCase.path)
		assert.Contains(t, err.Error(), testCase.errorMsg)
	}
}

func TestLoadCustomPayloadWithVariables(t *testing.T) {
	cfg := validConfig()
	cfg.CustomJSONFile = "testdata/payload.yaml"
	cfg.VariablesFile = "testdata/vars.yaml"
	cfg.Variables = []string{"environment=production"}

	payload, err := deployclient.LoadCustomPayload(*cfg)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"deploy":{"web":{"environment":"production","migrate":true}}}`, string(payload))
}

func TestLoadCustomPayloadInline(t *testing.T) {
	cfg := validConfig()
	cfg.CustomJSON = `{ "deploy": { "web": { "migrate": false } } }`

	payload, err := deployclient.LoadCustomPayload(*cfg)

	assert.NoError(t, err)
	assert.Equal(t, `{"deploy":{"web":{"migrate":false}}}`, string(payload))
}

func TestLoadCustomPayloadInlineMalformed(t *testing.T) {
	cfg := validConfig()

	for _, input := range []string{`{"deploy":`, `[1,2,3]`, `"string"`} {
		cfg.CustomJSON = input
		payload, err := deployclient.LoadCustomPayload(*cfg)
		assert.Nil(t, payload)
		assert.Equal(t, deployclient.ExitInvocationFailure, deployclient.ErrorExitCode(err), input)
	}
}

func TestLoadCustomPayloadDefault(t *testing.T) {
	payload, err := deployclient.LoadCustomPayload(*validConfig())
	assert.NoError(t, err)
	assert.Nil(t, payload)
}
