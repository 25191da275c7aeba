package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *AnalyzeRequest {
	return &AnalyzeRequest{
		Posts: []PostInput{
			{ID: "p1", Content: "battery range looks great", Source: "twitter"},
			{ID: "p2", Content: "sleeper comfort is solid", Source: "forums"},
		},
	}
}

func TestValidate_AcceptsValidRequest(t *testing.T) {
	assert.NoError(t, validRequest().Validate(100, 10000))
}

func TestValidate_EmptyBatchIsValid(t *testing.T) {
	req := &AnalyzeRequest{}
	assert.NoError(t, req.Validate(100, 10000))
}

func TestValidate_RejectsOversizedBatch(t *testing.T) {
	err := validRequest().Validate(1, 10000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch exceeds maximum")
}

func TestValidate_RejectsMissingID(t *testing.T) {
	req := validRequest()
	req.Posts[1].ID = ""
	err := req.Validate(100, 10000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posts[1]: id is required")
}

func TestValidate_RejectsDuplicateIDs(t *testing.T) {
	req := validRequest()
	req.Posts[1].ID = "p1"
	err := req.Validate(100, 10000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate id "p1"`)
}

func TestValidate_RejectsEmptyContent(t *testing.T) {
	req := validRequest()
	req.Posts[0].Content = ""
	err := req.Validate(100, 10000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content is required")
}

func TestValidate_RejectsOversizedContent(t *testing.T) {
	req := validRequest()
	req.Posts[0].Content = strings.Repeat("x", 101)
	err := req.Validate(100, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content exceeds 100 characters")
}

func TestValidate_RejectsUnknownSource(t *testing.T) {
	req := validRequest()
	req.Posts[0].Source = "myspace"
	err := req.Validate(100, 10000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "myspace"`)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
