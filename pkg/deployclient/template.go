package deployclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"
	yamlv2 "gopkg.in/yaml.v2"
)

type TemplateVariables map[string]any

var ErrPayloadNotObject = errors.New("custom payload must be a JSON object")

// LoadCustomPayload returns the custom payload requested by configuration,
// or nil if the default payload should be used.
func LoadCustomPayload(cfg Config) (json.RawMessage, error) {
	if len(cfg.CustomJSON) > 0 {
		payload, err := ParseCustomPayload([]byte(cfg.CustomJSON))
		if err != nil {
			return nil, ConfigErrorf("custom-json: %s", err)
		}
		return payload, nil
	}

	if len(cfg.CustomJSONFile) == 0 {
		return nil, nil
	}

	var err error
	templateVariables := make(TemplateVariables)

	if len(cfg.VariablesFile) > 0 {
		templateVariables, err = templateVariablesFromFile(cfg.VariablesFile)
		if err != nil {
			return nil, ConfigErrorf("load template variables: %s", err)
		}
	}

	if len(cfg.Variables) > 0 {
		templateOverrides := templateVariablesFromSlice(cfg.Variables)
		for key, val := range templateOverrides {
			if oldval, ok := templateVariables[key]; ok {
				log.Warnf("Overwriting template variable '%s'; previous value was '%v'", key, oldval)
			}
			log.Infof("Setting template variable '%s' to '%v'", key, val)
			templateVariables[key] = val
		}
	}

	return PayloadFileAsJSON(cfg.CustomJSONFile, templateVariables)
}

// ParseCustomPayload checks that data is a JSON object and returns it in compact form.
func ParseCustomPayload(data []byte) (json.RawMessage, error) {
	object := make(map[string]json.RawMessage)
	err := json.Unmarshal(data, &object)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPayloadNotObject, err)
	}
	buf := &bytes.Buffer{}
	err = json.Compact(buf, data)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PayloadFileAsJSON renders a YAML or JSON payload file through the template engine,
// and returns the single document it contains as JSON.
func PayloadFileAsJSON(path string, ctx TemplateVariables) (json.RawMessage, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, ConfigErrorf("%s: open file: %s", path, err)
	}

	templated, err := templatedFile(file, ctx)
	if err != nil {
		errMsg := strings.ReplaceAll(err.Error(), "\n", ": ")
		return nil, Errorf(ExitTemplateError, "%s: %s", path, errMsg)
	}

	var content any
	decoder := yamlv2.NewDecoder(bytes.NewReader(templated))
	err = decoder.Decode(&content)
	if err == io.EOF {
		return nil, ConfigErrorf("%s: payload file is empty", path)
	} else if err != nil {
		return nil, Errorf(ExitTemplateError, "%s: %s", path, err)
	}

	var extra any
	if err = decoder.Decode(&extra); err != io.EOF {
		return nil, ConfigErrorf("%s: payload file must contain exactly one document", path)
	}

	rawdocument, err := yamlv2.Marshal(content)
	if err != nil {
		return nil, Errorf(ExitTemplateError, "%s: %s", path, err)
	}

	data, err := yaml.YAMLToJSON(rawdocument)
	if err != nil {
		errMsg := strings.ReplaceAll(err.Error(), "\n", ": ")
		return nil, Errorf(ExitTemplateError, "%s: %s", path, errMsg)
	}

	payload, err := ParseCustomPayload(data)
	if err != nil {
		return nil, ConfigErrorf("%s: %s", path, err)
	}

	return payload, nil
}

func templatedFile(data []byte, ctx TemplateVariables) ([]byte, error) {
	if len(ctx) == 0 {
		return data, nil
	}
	template, err := raymond.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse template file: %s", err)
	}

	output, err := template.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("execute template: %s", err)
	}

	return []byte(output), nil
}

func templateVariablesFromFile(path string) (TemplateVariables, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: open file: %s", path, err)
	}

	vars := TemplateVariables{}
	err = yaml.Unmarshal(file, &vars)

	return vars, err
}

func templateVariablesFromSlice(vars []string) TemplateVariables {
	tv := TemplateVariables{}
	for _, keyval := range vars {
		tokens := strings.SplitN(keyval, "=", 2)
		switch len(tokens) {
		case 2: // KEY=VAL
			tv[tokens[0]] = tokens[1]
		case 1: // KEY
			tv[tokens[0]] = true
		default:
			continue
		}
	}

	return tv
}
