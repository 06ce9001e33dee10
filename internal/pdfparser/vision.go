package pdfparser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"banktocfo/cfopack/internal/dateutils"
	"banktocfo/cfopack/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

// extractionPrompt instructs the vision model to return a strict JSON array
// of transactions for one statement page.
const extractionPrompt = `You are extracting transaction data from a bank statement image.

Extract ALL transactions from this bank statement page and return them as a JSON array.

For each transaction, extract:
- date: in YYYY-MM-DD format
- description: the merchant/payee name and details
- amount: the transaction amount as a number (use negative for debits/charges, positive for deposits/credits)
- type: either "Debit" or "Credit"

IMPORTANT:
- Debits (money out) should be NEGATIVE numbers
- Credits (money in) should be POSITIVE numbers
- If you see a "-" sign in the amount, make it negative
- Convert all dates to YYYY-MM-DD format
- Extract EVERY transaction on the page, don't skip any
- If there's a running balance column, ignore it

Return ONLY a valid JSON array. Do NOT wrap the response in Markdown code fences.
If you cannot find any transactions, return an empty array: []`

// VisionExtractor turns one rasterized statement page into candidate
// transaction records. Implementations are treated as untrusted: whatever
// they return is re-validated before entering the pipeline.
type VisionExtractor interface {
	ExtractPage(ctx context.Context, pageImage []byte) ([]models.Transaction, error)
}

// GeminiExtractor implements VisionExtractor against the Gemini vision API.
type GeminiExtractor struct {
	apiKey  string
	model   string
	timeout time.Duration
}

// NewGeminiExtractor creates an extractor for the given model. The timeout
// bounds each page's API call.
func NewGeminiExtractor(apiKey, model string, timeout time.Duration) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("vision extraction requires GEMINI_API_KEY to be set")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiExtractor{apiKey: apiKey, model: model, timeout: timeout}, nil
}

// ExtractPage sends the page image to Gemini and converts the response into
// validated transactions.
func (e *GeminiExtractor) ExtractPage(ctx context.Context, pageImage []byte) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Gemini client")
		}
	}()

	model := client.GenerativeModel(e.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx,
		genai.Text(extractionPrompt),
		genai.ImageData("png", pageImage),
	)
	if err != nil {
		return nil, fmt.Errorf("error calling Gemini vision API: %w", err)
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	return DecodeCandidates(sb.String())
}

// DecodeCandidates parses the model's response text into validated
// transactions. The text is cleaned of Markdown fences first; each candidate
// record is coerced field by field and dropped when its date or amount does
// not survive validation.
func DecodeCandidates(responseText string) ([]models.Transaction, error) {
	cleaned := stripCodeFences(responseText)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response from vision model")
	}

	var candidates []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
		return nil, fmt.Errorf("vision response is not a JSON array: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(candidates))
	for i, candidate := range candidates {
		tx, err := promoteCandidate(candidate)
		if err != nil {
			log.WithField("candidate", i).WithError(err).Debug("Dropping invalid vision candidate")
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// promoteCandidate validates one loosely-typed candidate record and converts
// it into a canonical transaction.
func promoteCandidate(candidate map[string]any) (models.Transaction, error) {
	date, err := coerceDate(candidate["date"])
	if err != nil {
		return models.Transaction{}, err
	}

	description, _ := candidate["description"].(string)
	description = strings.TrimSpace(description)
	if description == "" {
		return models.Transaction{}, fmt.Errorf("missing description")
	}

	amount, err := coerceAmount(candidate["amount"])
	if err != nil {
		return models.Transaction{}, err
	}

	txType, _ := candidate["type"].(string)
	switch strings.ToLower(strings.TrimSpace(txType)) {
	case "debit":
		txType = models.TypeDebit
	case "credit":
		txType = models.TypeCredit
	default:
		txType = models.TypeFromAmount(amount)
	}

	return models.NewTransaction(date, description, amount, txType), nil
}

func coerceDate(value any) (string, error) {
	raw, ok := value.(string)
	if !ok || raw == "" {
		return "", fmt.Errorf("missing date")
	}
	raw = strings.TrimSpace(raw)
	if dateutils.IsISO(raw) {
		return raw, nil
	}
	// The model was asked for ISO dates but does not always comply.
	iso, err := dateutils.ToISO(raw)
	if err != nil {
		return "", fmt.Errorf("bad date %q: %w", raw, err)
	}
	return iso, nil
}

func coerceAmount(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		amount, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("bad amount %q: %w", v, err)
		}
		return amount, nil
	case json.Number:
		amount, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("bad amount %q: %w", v, err)
		}
		return amount, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("missing or non-numeric amount")
	}
}

// stripCodeFences removes Markdown code fences the model sometimes wraps
// around its JSON, then trims to the outermost JSON array.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

// MockExtractor implements VisionExtractor for tests, returning one
// predefined result per page in order.
type MockExtractor struct {
	Results [][]models.Transaction
	Errs    []error
	calls   int
}

// ExtractPage returns the next predefined result.
func (m *MockExtractor) ExtractPage(context.Context, []byte) ([]models.Transaction, error) {
	i := m.calls
	m.calls++
	if i < len(m.Errs) && m.Errs[i] != nil {
		return nil, m.Errs[i]
	}
	if i < len(m.Results) {
		return m.Results[i], nil
	}
	return nil, nil
}
