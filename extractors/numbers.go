package extractors

import (
	"strconv"
	"unicode"

	"intentrouter/normalization"
)

// numberWords закрытый словарь числительных RU/EN с падежными формами
var numberWords = map[string]int{
	// Русские числительные
	"один": 1, "одна": 1, "одно": 1, "одного": 1, "одной": 1,
	"два": 2, "две": 2, "двух": 2,
	"три": 3, "трёх": 3, "тре": 3, "трех": 3,
	"четыре": 4, "четырёх": 4, "четырех": 4,
	"пять": 5, "пяти": 5,
	"шесть": 6, "шести": 6,
	"семь": 7, "семи": 7,
	"восемь": 8, "восьми": 8,
	"девять": 9, "девяти": 9,
	"десять": 10, "десяти": 10,

	// Английские числительные
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// NumberWord возвращает значение числительного, если токен есть в словаре
func NumberWord(token string) (int, bool) {
	n, ok := numberWords[token]
	return n, ok
}

// Numbers извлекает числа слева направо: цифровые последовательности и числительные.
// Последовательности, не помещающиеся в int, пропускаются.
func Numbers(text normalization.Text) []int {
	numbers := []int{}
	for _, tok := range text.Tokens {
		if n, ok := NumberWord(tok); ok {
			numbers = append(numbers, n)
			continue
		}
		for _, run := range digitRuns(tok) {
			if n, err := strconv.Atoi(run); err == nil {
				numbers = append(numbers, n)
			}
		}
	}
	return numbers
}

// HasNumber сообщает, есть ли в тексте хотя бы одно число
func HasNumber(text normalization.Text) bool {
	for _, tok := range text.Tokens {
		if _, ok := numberWords[tok]; ok {
			return true
		}
		for _, run := range digitRuns(tok) {
			if _, err := strconv.Atoi(run); err == nil {
				return true
			}
		}
	}
	return false
}

// digitRuns возвращает максимальные последовательности ASCII цифр внутри токена,
// не соприкасающиеся с буквами: "30" и "13.02" дают числа, "30шт" и "a1" нет
func digitRuns(token string) []string {
	var runs []string
	runes := []rune(token)
	for i := 0; i < len(runes); {
		if !isASCIIDigit(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isASCIIDigit(runes[i]) {
			i++
		}
		if start > 0 && isWordRune(runes[start-1]) {
			continue
		}
		if i < len(runes) && isWordRune(runes[i]) {
			continue
		}
		runs = append(runs, string(runes[start:i]))
	}
	return runs
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigits(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
