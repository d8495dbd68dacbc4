package advisor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fourfold/fourfold/internal/config"
	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/money"
	log "github.com/sirupsen/logrus"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNotConfigured is returned before any request is attempted when the
// advisor API key is missing.
var ErrNotConfigured = errors.New("advisor is not configured: missing API key")

// Client is the capability interface of the generative-AI collaborator.
// Implementations must contain their failures: a broken collaborator
// yields an error, never a crash.
type Client interface {
	Review(ctx context.Context, request ReviewRequest) (string, error)
	ParseStatement(ctx context.Context, document Document) ([]StatementRecord, error)
}

// GeminiClient talks to the Google Generative Language REST API.
type GeminiClient struct {
	cfg        config.Advisor
	httpClient *http.Client
}

func NewGeminiClient(cfg config.Advisor) *GeminiClient {
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

func (c *GeminiClient) Review(ctx context.Context, request ReviewRequest) (string, error) {
	if c.cfg.ApiKey == "" {
		return "", ErrNotConfigured
	}

	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: reviewPrompt(request)}}},
		},
	}

	text, err := c.generateContent(ctx, body)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *GeminiClient) ParseStatement(ctx context.Context, document Document) ([]StatementRecord, error) {
	if c.cfg.ApiKey == "" {
		return nil, ErrNotConfigured
	}

	parts := []geminiPart{{Text: statementPrompt()}}
	if len(document.Data) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: document.MimeType,
			Data:     base64.StdEncoding.EncodeToString(document.Data),
		}})
	} else {
		parts = append(parts, geminiPart{Text: document.Text})
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   statementResponseSchema(),
		},
	}

	text, err := c.generateContent(ctx, body)
	if err != nil {
		return nil, err
	}
	records, err := parseStatementRecords([]byte(text))
	if err != nil {
		err := fmt.Errorf("advisor returned a malformed statement response: %w", err)
		log.Error(err)
		return nil, err
	}
	return records, nil
}

// generateContent performs one generateContent call and returns the text
// of the first candidate.
func (c *GeminiClient) generateContent(ctx context.Context, body geminiRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode advisor request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", baseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.ApiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err := fmt.Errorf("advisor request failed: %w", err)
		log.Error(err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("advisor API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return "", err
	}

	var response struct {
		Candidates []struct {
			Content geminiContent `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		err := fmt.Errorf("failed to decode advisor response: %w", err)
		log.Error(err)
		return "", err
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advisor returned no content")
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

func reviewPrompt(request ReviewRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a personal budgeting assistant following the 40/30/20/10 rule ")
	fmt.Fprintf(&b, "(40%% needs, 30%% wants, 20%% savings, 10%% giving).\n")
	fmt.Fprintf(&b, "Review the following month and give a short, practical critique of the budget. ")
	fmt.Fprintf(&b, "Point out categories that are over their allocation and suggest concrete improvements.\n\n")
	fmt.Fprintf(&b, "Month: %s\n", request.Month)
	fmt.Fprintf(&b, "Net income: %s %s\n", request.Income, request.Currency)
	fmt.Fprintf(&b, "Expenses:\n")
	for _, e := range request.Expenses {
		fmt.Fprintf(&b, "- %s | %s %s | %s | %s\n",
			e.Date.Format("2006-01-02"), e.Amount, request.Currency, e.Category, e.Description)
	}
	return b.String()
}

func statementPrompt() string {
	return "Extract every transaction from the attached bank statement. " +
		"Classify each as INCOME (salary, deposits, incoming transfers), " +
		"EXPENSE (purchases, bills, outgoing payments) or IGNORE " +
		"(internal transfers, card repayments, balance lines). " +
		"For EXPENSE records assign one category: NEEDS, WANTS, SAVINGS or GIVING. " +
		"Amounts are positive decimals, dates are YYYY-MM-DD."
}

// statementResponseSchema constrains the collaborator to the statement
// record contract.
func statementResponseSchema() map[string]any {
	return map[string]any{
		"type": "ARRAY",
		"items": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"description": map[string]any{"type": "STRING"},
				"amount":      map[string]any{"type": "NUMBER"},
				"date":        map[string]any{"type": "STRING"},
				"type": map[string]any{
					"type": "STRING",
					"enum": []string{"INCOME", "EXPENSE", "IGNORE"},
				},
				"category": map[string]any{
					"type": "STRING",
					"enum": []string{"NEEDS", "WANTS", "SAVINGS", "GIVING"},
				},
			},
			"required": []string{"description", "amount", "date", "type"},
		},
	}
}

type statementRecordDTO struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category,omitempty"`
}

func parseStatementRecords(data []byte) ([]StatementRecord, error) {
	var dtos []statementRecordDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, err
	}

	records := make([]StatementRecord, 0, len(dtos))
	for i, dto := range dtos {
		recordType := RecordType(dto.Type)
		switch recordType {
		case RecordIncome, RecordExpense, RecordIgnore:
		default:
			return nil, fmt.Errorf("record %d has unknown type %q", i, dto.Type)
		}
		date, err := time.Parse("2006-01-02", dto.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d has invalid date %q", i, dto.Date)
		}
		if dto.Amount <= 0 {
			return nil, fmt.Errorf("record %d has non-positive amount %v", i, dto.Amount)
		}
		records = append(records, StatementRecord{
			Description: strings.TrimSpace(dto.Description),
			Amount:      money.FromFloat(dto.Amount),
			Date:        date,
			Type:        recordType,
			Category:    category.ID(dto.Category),
		})
	}
	return records, nil
}
