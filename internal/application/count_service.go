package application

import (
	"fmt"
	"strconv"

	"github.com/mutscore/mutscore/internal/domain"
)

// CountResult is the outcome breakdown of one directory and the counts
// derived from it.
type CountResult struct {
	Dir      string              `json:"dir"`
	Outcomes domain.Outcomes     `json:"outcomes"`
	Counts   domain.MutantCounts `json:"counts"`
}

// CountService turns a mutants.out directory into caught/missed step outputs.
type CountService struct {
	reports *ReportService
	writer  domain.OutputWriter
}

func NewCountService(reports *ReportService, writer domain.OutputWriter) *CountService {
	return &CountService{reports: reports, writer: writer}
}

// Count reads dir (the configured outcome dir when empty).
func (s *CountService) Count(cfg domain.ProjectConfig, dir string) (*CountResult, error) {
	if dir == "" {
		dir = cfg.OutcomeDir
	}
	outcomes, err := s.reports.reader.Read(dir)
	if err != nil {
		return nil, fmt.Errorf("reading outcomes: %w", err)
	}
	return &CountResult{
		Dir:      dir,
		Outcomes: outcomes,
		Counts:   outcomes.Counts(cfg.Unviable, cfg.Timeout),
	}, nil
}

// Publish writes the caught and missed step outputs. A non-empty prefix
// yields keys like master_caught.
func (s *CountService) Publish(counts domain.MutantCounts, prefix string) error {
	key := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "_" + k
	}
	err := s.writer.Write(map[string]string{
		key("caught"): strconv.Itoa(counts.Caught),
		key("missed"): strconv.Itoa(counts.Missed),
	})
	if err != nil {
		return fmt.Errorf("writing outputs: %w", err)
	}
	return nil
}
