package dataset

import (
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"payequity/internal/compliance"
	dErrors "payequity/pkg/domain-errors"
)

// DecodeJSON accepts a bare array of job classes or an object with
// "jurisdiction", "report_year" and "jobs".
func DecodeJSON(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "json dataset is empty")
	}

	if data[0] == '[' {
		var jobs []compliance.JobClass
		if err := json.Unmarshal(data, &jobs); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid json dataset")
		}
		return &Dataset{Jobs: jobs}, nil
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid json dataset")
	}
	return &ds, nil
}

// DecodeYAML accepts the same two shapes as DecodeJSON.
func DecodeYAML(r io.Reader) (*Dataset, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return nil, dErrors.New(dErrors.CodeValidation, "yaml dataset is empty")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid yaml dataset")
	}

	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if root.Kind == yaml.SequenceNode {
		var jobs []compliance.JobClass
		if err := root.Decode(&jobs); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid yaml dataset")
		}
		return &Dataset{Jobs: jobs}, nil
	}

	var ds Dataset
	if err := root.Decode(&ds); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid yaml dataset")
	}
	return &ds, nil
}
