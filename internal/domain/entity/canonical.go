// Package entity defines the core business entities for the domain layer.
package entity

import "strings"

// Canonical category names. Every entry produced by ingestion is tagged with
// one of these; CategoryNameFallback is the catch-all bucket.
const (
	CategoryNameFood           = "食費"
	CategoryNameDailyGoods     = "日用品"
	CategoryNameTransport      = "交通費"
	CategoryNameEntertainment  = "娯楽"
	CategoryNameMedical        = "医療"
	CategoryNameEducation      = "教育"
	CategoryNameUtilities      = "光熱費"
	CategoryNameCommunications = "通信費"
	CategoryNameFallback       = "その他"
)

// categoryKeyword maps a keyword substring to a canonical category name.
type categoryKeyword struct {
	Keyword   string
	Canonical string
}

// categoryKeywordTable is scanned top to bottom; the first keyword found as a
// substring of the guess wins. Table order is part of the contract: a guess
// containing several keywords resolves to the earliest row, so reordering
// rows changes behavior.
var categoryKeywordTable = []categoryKeyword{
	{"食", CategoryNameFood},
	{"スーパー", CategoryNameFood},
	{"ランチ", CategoryNameFood},
	{"コンビニ", CategoryNameFood},
	{"カフェ", CategoryNameFood},
	{"レストラン", CategoryNameFood},
	{"弁当", CategoryNameFood},
	{"日用", CategoryNameDailyGoods},
	{"雑貨", CategoryNameDailyGoods},
	{"ドラッグ", CategoryNameDailyGoods},
	{"洗剤", CategoryNameDailyGoods},
	{"交通", CategoryNameTransport},
	{"電車", CategoryNameTransport},
	{"バス", CategoryNameTransport},
	{"タクシー", CategoryNameTransport},
	{"ガソリン", CategoryNameTransport},
	{"娯楽", CategoryNameEntertainment},
	{"趣味", CategoryNameEntertainment},
	{"映画", CategoryNameEntertainment},
	{"ゲーム", CategoryNameEntertainment},
	{"本", CategoryNameEntertainment},
	{"医療", CategoryNameMedical},
	{"病院", CategoryNameMedical},
	{"薬", CategoryNameMedical},
	{"教育", CategoryNameEducation},
	{"学費", CategoryNameEducation},
	{"塾", CategoryNameEducation},
	{"学校", CategoryNameEducation},
	{"書籍", CategoryNameEducation},
	{"光熱", CategoryNameUtilities},
	{"電気", CategoryNameUtilities},
	{"ガス", CategoryNameUtilities},
	{"水道", CategoryNameUtilities},
	{"通信", CategoryNameCommunications},
	{"携帯", CategoryNameCommunications},
	{"スマホ", CategoryNameCommunications},
	{"ネット", CategoryNameCommunications},
	{CategoryNameFallback, CategoryNameFallback},
}

// NormalizeCategoryName maps a free-text category guess to a canonical
// category name. The guess is lower-cased and trimmed, then matched against
// the keyword table in order. Empty guesses and guesses matching no keyword
// resolve to the catch-all. Total function: always returns a non-empty name.
func NormalizeCategoryName(guess string) string {
	guess = strings.ToLower(strings.TrimSpace(guess))
	if guess == "" {
		return CategoryNameFallback
	}

	for _, row := range categoryKeywordTable {
		if strings.Contains(guess, row.Keyword) {
			return row.Canonical
		}
	}
	return CategoryNameFallback
}

// defaultCategory describes one bootstrap category.
type defaultCategory struct {
	Name  string
	Color string
	Icon  string
}

var defaultCategories = []defaultCategory{
	{CategoryNameFood, "#EF4444", "utensils"},
	{CategoryNameDailyGoods, "#F59E0B", "shopping-cart"},
	{CategoryNameTransport, "#3B82F6", "bus"},
	{CategoryNameEntertainment, "#8B5CF6", "gamepad"},
	{CategoryNameMedical, "#EC4899", "medical"},
	{CategoryNameEducation, "#10B981", "book"},
	{CategoryNameUtilities, "#F97316", "bolt"},
	{CategoryNameCommunications, "#06B6D4", "phone"},
	{CategoryNameFallback, "#6B7280", "tag"},
}

// DefaultCategories returns the fixed bootstrap category set, in canonical
// order. The slice is freshly allocated on each call.
func DefaultCategories() []*Category {
	categories := make([]*Category, 0, len(defaultCategories))
	for _, dc := range defaultCategories {
		categories = append(categories, NewCategory(dc.Name, dc.Color, dc.Icon))
	}
	return categories
}
