// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// GeminiVisionService implements the VisionService using Google Gemini.
type GeminiVisionService struct {
	apiKey    string
	modelName string
}

// NewGeminiVisionService creates a new Gemini vision service instance.
func NewGeminiVisionService(apiKey, modelName string) *GeminiVisionService {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	return &GeminiVisionService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiVisionService) IsAvailable() bool {
	return s.apiKey != ""
}

// AnalyzePage sends one ledger page image to Gemini and returns the
// extracted line items.
func (s *GeminiVisionService) AnalyzePage(ctx context.Context, image []byte, mimeType string) (*entity.PageAnalysis, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	// Create client
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	// Get the model
	model := client.GenerativeModel(s.modelName)

	// Configure model for JSON output
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	// Generate response
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat(mimeType), image),
		genai.Text(pagePrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	// Parse response
	analysis, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return analysis, nil
}

// pagePrompt is the fixed instruction for ledger page extraction.
const pagePrompt = `あなたは手書きの家計簿ページを読み取る専門家です。画像に写っている支出の行をすべて抽出してください。

各行について:
1. date: 支出日を YYYY-MM-DD 形式で。年や月が読み取れない場合は今日の日付を使う
2. itemName: 品目名。読み取れた文字をそのまま使う
3. amount: 金額を整数の円で。桁区切りや通貨記号は除く
4. suggestedCategory: 支出のカテゴリ。次の中から選ぶ: 食費, 日用品, 交通費, 娯楽, 医療, 教育, 光熱費, 通信費, その他。判断できない場合は「その他」

応答は次の形式の JSON オブジェクトのみで返してください。説明文は不要です:
{
  "entries": [
    { "date": "YYYY-MM-DD", "itemName": "string", "amount": 0, "suggestedCategory": "string" }
  ],
  "confidence": 0.0,
  "rawText": "ページから読み取れた生のテキスト"
}

confidence は読み取り全体の確信度 (0.0-1.0)。支出の行が一つも見つからない場合は entries を空配列にしてください。
`

// geminiLineItem represents one extracted line in the raw Gemini response.
type geminiLineItem struct {
	Date              string `json:"date"`
	ItemName          string `json:"itemName"`
	Amount            int64  `json:"amount"`
	SuggestedCategory string `json:"suggestedCategory"`
}

// geminiPageResponse represents the raw response from Gemini.
type geminiPageResponse struct {
	Entries    []geminiLineItem `json:"entries"`
	Confidence float64          `json:"confidence"`
	RawText    string           `json:"rawText"`
}

// parseResponse parses the Gemini response into a PageAnalysis.
func (s *GeminiVisionService) parseResponse(resp *genai.GenerateContentResponse) (*entity.PageAnalysis, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	// Get the text content from the response
	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimSpace(textContent)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	// Parse JSON
	var page geminiPageResponse
	if err := json.Unmarshal([]byte(textContent), &page); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	items := make([]entity.PageLineItem, 0, len(page.Entries))
	for _, item := range page.Entries {
		items = append(items, entity.PageLineItem{
			Date:              item.Date,
			ItemName:          item.ItemName,
			Amount:            item.Amount,
			SuggestedCategory: item.SuggestedCategory,
		})
	}

	return &entity.PageAnalysis{
		Items:      items,
		Confidence: page.Confidence,
		RawText:    page.RawText,
	}, nil
}

// imageFormat converts a MIME type like "image/jpeg" into the format name
// the genai SDK expects.
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" {
		format = "jpeg"
	}
	return format
}
