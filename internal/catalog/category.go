package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the product family derived from the product name.
type Category string

const (
	Houses       Category = "Домики"
	PlaySystems  Category = "Игровые комплексы"
	Sandboxes    Category = "Песочницы"
	MiniGazebos  Category = "Мини-беседки"
	Gazebos      Category = "Беседки"
	PlayElements Category = "Игровые элементы"
)

// FallbackGenitive is the genitive form used for categories outside the known set.
const FallbackGenitive = "конструкции"

var genitives = map[Category]string{
	Houses:       "игрового домика",
	PlaySystems:  "игрового комплекса",
	PlayElements: "игрового элемента",
	MiniGazebos:  "мини-беседки",
	Gazebos:      "беседки",
	Sandboxes:    "песочницы",
}

// categoryRules are checked in order; mini-gazebos must precede gazebos.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{Houses, []string{"домик"}},
	{PlaySystems, []string{"комплекс"}},
	{Sandboxes, []string{"песочниц"}},
	{MiniGazebos, []string{"мини-беседк", "минибеседк"}},
	{Gazebos, []string{"беседк"}},
}

var lower = cases.Lower(language.Russian)

// CategoryOf derives the category of a product from its name.
func CategoryOf(name string) Category {
	folded := lower.String(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(folded, kw) {
				return rule.category
			}
		}
	}
	return PlayElements
}

// Genitive returns the category phrase in the genitive case ("расчет игрового домика").
func (c Category) Genitive() string {
	if g, ok := genitives[c]; ok {
		return g
	}
	return FallbackGenitive
}

func (c Category) String() string {
	return string(c)
}
