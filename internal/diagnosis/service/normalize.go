package service

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// всё, что не буква/цифра/подчёркивание/пробел, выкидываем (не заменяем пробелом)
var nonWord = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]+`)

// Normalize приводит фразу симптома к сравнимому виду:
// NFC, нижний регистр, без пунктуации, пробелы схлопнуты.
// Одинаково применяется к каталогу и к вводу пользователя.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out := norm.NFC.String(s)
	out = strings.ToLower(out)
	out = nonWord.ReplaceAllString(out, "")
	return collapseSpaces(out)
}

// NormalizeList: Normalize для каждого, пустые выкидываются, дубли схлопываются.
// Результат отсортирован, чтобы обход был детерминированным.
func NormalizeList(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		n := Normalize(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// SplitSymptoms режет пользовательский текст по запятым.
func SplitSymptoms(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tokenSet(s string) map[string]struct{} {
	f := strings.Fields(s)
	m := make(map[string]struct{}, len(f))
	for _, w := range f {
		m[w] = struct{}{}
	}
	return m
}

func wordCount(s string) int { return len(strings.Fields(s)) }
