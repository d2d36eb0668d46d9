package passport

import (
	"regexp"
	"strings"
)

var (
	parenthesesRe   = regexp.MustCompile(`\([^)]+\)`)
	lineTailRe      = regexp.MustCompile(`\n.*`)
	columnSplitRe   = regexp.MustCompile(`[\t\s]{2,}`)
	unitSuffixRe    = regexp.MustCompile(`,\s*(мм|кг|м)\s*`)
	cyrillicWordsRe = regexp.MustCompile(`[а-яА-ЯёЁ]+`)
)

var freeTextKeywords = []string{"длина", "ширина", "высота", "масса"}

// ParseTable reads parameter rows from a two-column technical table.
func ParseTable(table Table) *TechnicalData {
	data := NewTechnicalData()
	if len(table) == 0 {
		return data
	}

	start := 0
	header := strings.ToUpper(strings.Join(table[0], " "))
	if strings.Contains(header, "ПАРАМЕТР") || strings.Contains(header, "НАИМЕНОВАНИЕ") {
		start = 1
	}

	for _, row := range table[start:] {
		if len(row) < 2 {
			continue
		}
		rawName := row[0]
		name := strings.TrimSpace(rawName)
		value := strings.TrimSpace(row[1])
		if name == "" || value == "" {
			continue
		}
		if strings.Contains(strings.ToUpper(name), "ПАРАМЕТР") || strings.Contains(strings.ToUpper(value), "ЗНАЧЕНИЕ") {
			continue
		}

		name = strings.TrimSpace(parenthesesRe.ReplaceAllString(name, ""))
		name = strings.TrimSpace(lineTailRe.ReplaceAllString(name, ""))
		value = strings.TrimSpace(strings.ReplaceAll(value, "\n", " "))

		if value != "" && len([]rune(name)) > 2 {
			data.Set(name, value, tableUnit(rawName))
		}
	}
	return data
}

func tableUnit(rawName string) string {
	n := strings.ToLower(rawName)
	switch {
	case strings.Contains(n, "мм"):
		return "мм"
	case strings.Contains(n, "кг"):
		return "кг"
	case strings.Contains(n, "м"):
		return "м"
	}
	return ""
}

// ParseFreeText scans page text for dimension and mass lines such as
// "Длина, мм    10 222".
func ParseFreeText(text string) *TechnicalData {
	data := NewTechnicalData()
	for _, line := range strings.Split(text, "\n") {
		if len([]rune(strings.TrimSpace(line))) < 10 {
			continue
		}
		if !containsAny(strings.ToLower(line), freeTextKeywords) {
			continue
		}

		parts := columnSplitRe.Split(line, -1)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[len(parts)-1])

		unit := ""
		switch lowered := strings.ToLower(name); {
		case strings.Contains(lowered, "мм"):
			unit = "мм"
		case strings.Contains(lowered, "кг"):
			unit = "кг"
		}

		name = parenthesesRe.ReplaceAllString(name, "")
		name = strings.TrimSpace(unitSuffixRe.ReplaceAllString(name, ""))
		value = strings.TrimSpace(cyrillicWordsRe.ReplaceAllString(value, ""))

		if name != "" && value != "" {
			data.Set(name, value, unit)
		}
	}
	return data
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
