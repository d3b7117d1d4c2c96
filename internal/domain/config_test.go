package domain_test

import (
	"errors"
	"testing"

	"github.com/mutscore/mutscore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, domain.FormatTable, cfg.Format)
	assert.Equal(t, "Master", cfg.BaselineLabel)
	assert.Equal(t, "Branch", cfg.CandidateLabel)
	assert.Equal(t, domain.PolicyCaught, cfg.Unviable)
	assert.Equal(t, domain.PolicyExclude, cfg.Timeout)
	assert.Equal(t, "mutants.out", cfg.OutcomeDir)
	assert.Nil(t, cfg.MinScore)
	assert.NoError(t, cfg.Validate())
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := domain.ProjectConfig{
		Format:        domain.FormatSentence,
		BaselineLabel: "main",
		Unviable:      domain.PolicyExclude,
	}.WithDefaults()

	assert.Equal(t, domain.FormatSentence, cfg.Format)
	assert.Equal(t, "main", cfg.BaselineLabel)
	assert.Equal(t, "Branch", cfg.CandidateLabel)
	assert.Equal(t, domain.PolicyExclude, cfg.Unviable)
	assert.Equal(t, domain.DefaultCommentMarker, cfg.Comment.Marker)
}

func TestValidate_UnknownFormat(t *testing.T) {
	err := domain.ProjectConfig{Format: "html"}.Validate()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownFormat))
}

func TestValidate_UnknownPolicy(t *testing.T) {
	err := domain.ProjectConfig{Unviable: "missed"}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unviable")

	err = domain.ProjectConfig{Timeout: "sometimes"}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestValidate_MinScoreRange(t *testing.T) {
	tooHigh := 101.0
	assert.Error(t, domain.ProjectConfig{MinScore: &tooHigh}.Validate())

	negative := -1.0
	assert.Error(t, domain.ProjectConfig{MinScore: &negative}.Validate())

	ok := 75.5
	assert.NoError(t, domain.ProjectConfig{MinScore: &ok}.Validate())
}

func TestValidate_EmptyConfig(t *testing.T) {
	assert.NoError(t, domain.ProjectConfig{}.Validate())
}
