package currency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const (
	DefaultCode   = "EUR"
	DefaultLocale = "fr-FR"
)

var ErrNotFinite = errors.New("amount is not a finite number")

type localeFormat struct {
	group       string
	decimal     string
	symbolAfter bool
	symbolSep   string
	symbols     map[string]string
}

// Первый тег - запасной вариант для matcher
var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.MustParse("fr-FR"),
	language.BritishEnglish,
	language.MustParse("de-DE"),
	language.MustParse("ja-JP"),
}

var formats = []localeFormat{
	{
		group: ",", decimal: ".",
		symbols: map[string]string{"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥", "CAD": "CA$"},
	},
	{
		group: "\u202f", decimal: ",", symbolAfter: true, symbolSep: "\u00a0",
		symbols: map[string]string{"EUR": "€", "USD": "$US", "GBP": "£GB", "CAD": "$CA"},
	},
	{
		group: ",", decimal: ".",
		symbols: map[string]string{"GBP": "£", "USD": "US$", "EUR": "€", "JPY": "JP¥"},
	},
	{
		group: ".", decimal: ",", symbolAfter: true, symbolSep: "\u00a0",
		symbols: map[string]string{"EUR": "€", "USD": "$", "GBP": "£", "JPY": "¥"},
	},
	{
		group: ",", decimal: ".",
		symbols: map[string]string{"JPY": "￥", "USD": "$", "EUR": "€", "GBP": "£"},
	},
}

var matcher = language.NewMatcher(supportedTags)

// Format форматирует сумму как денежную строку для пары валюта/локаль.
// Конвертация валют не выполняется: меняется только представление числа.
func Format(amount float64, code, locale string) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrNotFinite
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("unknown currency %q: %w", code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("unknown locale %q: %w", locale, err)
	}

	// Локали вне таблицы получают ближайший формат, иначе en-US:
	// zh-CN форматируется как en-US, fr-CA - с разделителями fr-FR
	_, idx, _ := matcher.Match(tag)
	f := formats[idx]

	scale, _ := currency.Standard.Rounding(unit)
	rounded := decimal.NewFromFloat(amount).Round(int32(scale))

	// знак берется из исходной суммы: -0.001 дает "-0,00 €"
	negative := math.Signbit(amount)
	digits := rounded.Abs().StringFixed(int32(scale))

	intPart, fracPart, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}

	symbol, ok := f.symbols[unit.String()]
	if !ok {
		symbol = unit.String()
	}

	if !f.symbolAfter {
		b.WriteString(symbol)
		if !ok {
			b.WriteString("\u00a0")
		}
	}

	b.WriteString(group(intPart, f.group))
	if fracPart != "" {
		b.WriteString(f.decimal)
		b.WriteString(fracPart)
	}

	if f.symbolAfter {
		b.WriteString(f.symbolSep)
		b.WriteString(symbol)
	}

	return b.String(), nil
}

// FormatDefault - EUR во французской локали
func FormatDefault(amount float64) string {
	return MustFormat(amount, DefaultCode, DefaultLocale)
}

// MustFormat возвращает пустую строку вместо ошибки; удобно в шаблонах
func MustFormat(amount float64, code, locale string) string {
	s, err := Format(amount, code, locale)
	if err != nil {
		return ""
	}
	return s
}

func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}

	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
