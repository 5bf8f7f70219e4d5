// Package report records the outcome of a run as YAML.
package report

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"img2pdf/contracts"
)

type Report struct {
	Root     string                   `yaml:"root"`
	Created  []string                 `yaml:"created"`
	Failures int                      `yaml:"failures"`
	Folders  []contracts.FolderResult `yaml:"folders"`
}

func FromSummary(s contracts.ScanSummary) Report {
	created := s.Created()
	if created == nil {
		created = []string{}
	}
	return Report{
		Root:     s.Root,
		Created:  created,
		Failures: s.FailureCount(),
		Folders:  s.Folders,
	}
}

// Write stores the report for s at path.
func Write(path string, s contracts.ScanSummary) error {
	data, err := yaml.Marshal(FromSummary(s))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
