package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// GeminiParser implements adapter.IntentParser with Gemini function calling.
type GeminiParser struct {
	apiKey    string
	modelName string
}

// NewGeminiParser creates a new Gemini intent parser.
func NewGeminiParser(apiKey, modelName string) *GeminiParser {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	return &GeminiParser{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini parser is properly configured.
func (p *GeminiParser) IsAvailable() bool {
	return p.apiKey != ""
}

// Parse sends the message with the user's financial context and returns the chosen function.
func (p *GeminiParser) Parse(ctx context.Context, request adapter.IntentRequest) (*adapter.IntentResult, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("gemini parser is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.modelName)
	model.SetTemperature(0.1)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(buildSystemPrompt(request.Context))},
	}
	model.Tools = []*genai.Tool{{FunctionDeclarations: functionDeclarations()}}
	if request.ForceFunction != "" {
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingAny,
				AllowedFunctionNames: []string{string(request.ForceFunction)},
			},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(request.Message))
	if err != nil {
		return nil, translateGeminiError(err)
	}

	return parseGeminiResponse(resp)
}

// parseGeminiResponse extracts the first function call and any text from the response.
func parseGeminiResponse(resp *genai.GenerateContentResponse) (*adapter.IntentResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	result := &adapter.IntentResult{}
	var text []string
	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			text = append(text, string(v))
		case genai.FunctionCall:
			if result.FunctionCall == nil {
				result.FunctionCall = &entity.FunctionCall{
					Name: entity.FunctionName(v.Name),
					Args: v.Args,
				}
			}
		}
	}
	result.Message = strings.TrimSpace(strings.Join(text, ""))

	return result, nil
}

// translateGeminiError turns API status errors into adapter.ParserStatusError.
func translateGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &adapter.ParserStatusError{
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
		}
	}
	return fmt.Errorf("failed to generate content: %w", err)
}

func functionDeclarations() []*genai.FunctionDeclaration {
	dateParam := &genai.Schema{
		Type:        genai.TypeString,
		Description: "Dia no formato AAAA-MM-DD. Padrao: hoje.",
	}

	return []*genai.FunctionDeclaration{
		{
			Name:        string(entity.FunctionRecordTransaction),
			Description: "Registra um gasto ou recebimento do usuario.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"amount": {
						Type:        genai.TypeNumber,
						Description: "Valor positivo em reais.",
					},
					"type": {
						Type: genai.TypeString,
						Enum: []string{string(entity.TransactionTypeExpense), string(entity.TransactionTypeIncome)},
					},
					"payment_method": {
						Type: genai.TypeString,
						Enum: []string{string(entity.PaymentMethodDebit), string(entity.PaymentMethodCredit)},
					},
					"category": {
						Type: genai.TypeString,
						Enum: categoryNames(),
					},
					"description": {
						Type:        genai.TypeString,
						Description: "Descricao curta do lancamento.",
					},
				},
				Required: []string{"amount", "type"},
			},
		},
		{
			Name:        string(entity.FunctionGetCurrentBalance),
			Description: "Consulta o saldo atual e o credito disponivel.",
		},
		{
			Name:        string(entity.FunctionGetFinancialSummary),
			Description: "Resumo do mes: saldo, receitas previstas, contas e saldo projetado.",
		},
		{
			Name:        string(entity.FunctionGetDayTransactions),
			Description: "Lista os lancamentos de um dia.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateParam},
			},
		},
		{
			Name:        string(entity.FunctionGetScheduledPayments),
			Description: "Lista as contas agendadas e seus vencimentos.",
		},
	}
}

func categoryNames() []string {
	seen := map[entity.Category]bool{}
	var names []string
	for _, c := range append(entity.ExpenseCategories(), entity.IncomeCategories()...) {
		if !seen[c] {
			seen[c] = true
			names = append(names, string(c))
		}
	}
	return names
}
