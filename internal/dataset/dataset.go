// Package dataset loads job classification reports from CSV, JSON, YAML and
// HTML files and validates them before analysis.
package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"payequity/internal/compliance"
	dErrors "payequity/pkg/domain-errors"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// Dataset is one jurisdiction's list of job classes.
type Dataset struct {
	Name         string                `json:"name,omitempty" yaml:"name"`
	Jurisdiction string                `json:"jurisdiction,omitempty" yaml:"jurisdiction"`
	ReportYear   int                   `json:"report_year,omitempty" yaml:"report_year"`
	Jobs         []compliance.JobClass `json:"jobs" yaml:"jobs"`
}

// FormatFromPath picks the decoder for a file by its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unsupported dataset file %q", filepath.Base(path)))
	}
}

// Load reads, decodes and validates the dataset at path. The dataset name
// defaults to the file name without extension.
func Load(path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(format, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := Validate(ds.Jobs); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

// Decode parses r in the given format without validating it.
func Decode(format Format, r io.Reader) (*Dataset, error) {
	switch format {
	case FormatCSV:
		jobs, err := DecodeCSV(r)
		if err != nil {
			return nil, err
		}
		return &Dataset{Jobs: jobs}, nil
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatHTML:
		jobs, err := DecodeHTML(r)
		if err != nil {
			return nil, err
		}
		return &Dataset{Jobs: jobs}, nil
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unsupported dataset format %q", format))
	}
}
