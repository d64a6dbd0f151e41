// Package scan contains page ingestion use cases.
package scan

import (
	"context"
	"errors"
	"strings"
	"time"

	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
)

// visionErrorMessages contains user-facing messages for each vision error code.
var visionErrorMessages = map[domainerror.ScanErrorCode]string{
	domainerror.ErrCodeVisionTimeout:     "解析がタイムアウトしました。もう一度お試しください。",
	domainerror.ErrCodeVisionRateLimited: "リクエストが多すぎます。しばらく待ってからお試しください。",
	domainerror.ErrCodeVisionAuth:        "解析サービスの設定に問題があります。",
	domainerror.ErrCodeVisionTransport:   "解析サービスに接続できませんでした。通信環境を確認してください。",
	domainerror.ErrCodeVisionParse:       "解析結果を読み取れませんでした。もう一度お試しください。",
	domainerror.ErrCodeVisionUnknown:     "解析中に予期しないエラーが発生しました。",
}

// VisionFailure describes a classified vision call failure.
type VisionFailure struct {
	Code      domainerror.ScanErrorCode `json:"code"`
	Message   string                    `json:"message"`
	Retryable bool                      `json:"retryable"`
	Timestamp time.Time                 `json:"timestamp"`
}

// classifyVisionError converts a vision call error into a VisionFailure with
// an error code, localized message and retryable flag. The taxonomy follows
// the ingestion contract: transport and parse failures are distinct, and
// both leave the store unmodified.
func classifyVisionError(err error) *VisionFailure {
	now := time.Now().UTC()
	errStr := strings.ToLower(err.Error())

	// Timeout/cancellation (context errors)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newVisionFailure(domainerror.ErrCodeVisionTimeout, true, now)
	}

	// Rate limiting
	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return newVisionFailure(domainerror.ErrCodeVisionRateLimited, true, now)
	}

	// Authentication errors
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication") {
		return newVisionFailure(domainerror.ErrCodeVisionAuth, false, now)
	}

	// Network/connection errors
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503") {
		return newVisionFailure(domainerror.ErrCodeVisionTransport, true, now)
	}

	// Parse errors
	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode") {
		return newVisionFailure(domainerror.ErrCodeVisionParse, true, now)
	}

	return newVisionFailure(domainerror.ErrCodeVisionUnknown, true, now)
}

func newVisionFailure(code domainerror.ScanErrorCode, retryable bool, at time.Time) *VisionFailure {
	return &VisionFailure{
		Code:      code,
		Message:   visionErrorMessages[code],
		Retryable: retryable,
		Timestamp: at,
	}
}
