package service

import "strings"

const (
	scoreExact     = 1.0
	scoreSubstring = 0.8
	tokenBase      = 0.3
	tokenStep      = 0.1
	tokenCap       = 0.7
)

// Similarity сравнивает два нормализованных симптома, результат в [0,1].
// Это эвристика, а не метрика: совпадение > подстрока > общие слова.
// Общие слова дают min(0.7, 0.3+0.1*n) и никогда не обгоняют подстроку.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return scoreExact
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return scoreSubstring
	}
	common := 0
	wb := tokenSet(b)
	for w := range tokenSet(a) {
		if _, ok := wb[w]; ok {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	return min(tokenCap, tokenBase+tokenStep*float64(common))
}
