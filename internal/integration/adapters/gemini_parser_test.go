package adapters

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
)

func TestParseGeminiResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Certo. "),
				genai.FunctionCall{Name: "get_current_balance", Args: map[string]any{}},
				genai.FunctionCall{Name: "get_scheduled_payments"},
			}},
		}},
	}

	result, err := parseGeminiResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Certo.", result.Message)
	require.NotNil(t, result.FunctionCall)
	assert.Equal(t, entity.FunctionGetCurrentBalance, result.FunctionCall.Name)
}

func TestParseGeminiResponse_Empty(t *testing.T) {
	_, err := parseGeminiResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = parseGeminiResponse(nil)
	assert.Error(t, err)
}

func TestTranslateGeminiError(t *testing.T) {
	err := translateGeminiError(&googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota"})
	var statusErr *adapter.ParserStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)

	plain := translateGeminiError(errors.New("boom"))
	assert.False(t, errors.As(plain, &statusErr))
}

func TestFunctionDeclarations_CoverContract(t *testing.T) {
	for _, decl := range functionDeclarations() {
		assert.True(t, entity.FunctionName(decl.Name).IsKnown(), decl.Name)
	}
	assert.Len(t, functionDeclarations(), 5)
	assert.Contains(t, categoryNames(), "other")
}

func TestGeminiParser_NotConfigured(t *testing.T) {
	parser := NewGeminiParser("", "")
	assert.False(t, parser.IsAvailable())
}
