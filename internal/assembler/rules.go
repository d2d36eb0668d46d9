package assembler

import (
	"strconv"
)

// Text of the reference product the template was written for.
const (
	templateName        = "Змейка без песочницы"
	templateArticle     = "810152"
	templateTextArticle = "GA8808"
	templateGenitive    = "песочницы"
)

// PlaceholderKeys lists the {{key}} placeholders a template may use.
var PlaceholderKeys = []string{
	"article", "name", "category", "category_genitive", "children_count",
	"mass_child", "total_mass", "fh", "fz", "region", "snow_load", "wind_load",
	"date", "technical_parameters", "general_info", "construction_description",
	"conclusion",
}

// Placeholder returns the template marker of key.
func Placeholder(key string) string {
	return "{{" + key + "}}"
}

// Rules returns every substitution rule for a document.
func Rules(in Input) []Rule {
	rules := legacyRules(in)
	rules = append(rules, placeholderRules(in)...)
	return append(rules, narrativeRules(in)...)
}

// legacyRules rewrite the literal text of the reference product.
func legacyRules(in Input) []Rule {
	p := in.Product
	genitive := p.Category.Genitive()
	l := in.Loads

	return []Rule{
		{templateName + " арт." + templateArticle, p.Name + " арт." + p.Article},
		{templateName, p.Name},
		{"арт." + templateArticle, "арт." + p.Article},
		{templateArticle, p.Article},

		{templateTextArticle, p.Article},
		{"артикул " + templateTextArticle, "артикул " + p.Article},
		{templateGenitive + ", артикул " + templateTextArticle, genitive + ", артикул " + p.Article},
		{templateGenitive, genitive},

		{"10 детей", strconv.Itoa(l.ChildrenCount) + " детей"},
		{"32.5 кг", l.massChildText() + " кг"},
		{"32,5 кг", l.massChildText() + " кг"},

		{"Fh = 646,8 Н", "Fh = " + l.fhText() + " Н"},
		{"Fh = 646.8 Н", "Fh = " + l.fhText() + " Н"},
		{"Fz = 6468 Н", "Fz = " + l.fzText() + " Н"},
		{"Fz = 6468.0 Н", "Fz = " + l.fzText() + " Н"},
	}
}

// PlaceholderValues returns the value of every placeholder key.
func PlaceholderValues(in Input) map[string]string {
	values := map[string]string{
		"article":                  in.Product.Article,
		"name":                     in.Product.Name,
		"category":                 in.Product.Category.String(),
		"category_genitive":        in.Product.Category.Genitive(),
		"children_count":           strconv.Itoa(in.Loads.ChildrenCount),
		"mass_child":               in.Loads.massChildText(),
		"total_mass":               in.Loads.totalMassText(),
		"fh":                       in.Loads.fhText(),
		"fz":                       in.Loads.fzText(),
		"region":                   in.Region,
		"snow_load":                "",
		"wind_load":                "",
		"date":                     in.Date.Format(DateLayout),
		"technical_parameters":     TechnicalParameters(in.Data),
		"general_info":             GeneralInfo(in),
		"construction_description": ConstructionDescription(in),
		"conclusion":               Conclusion(in),
	}
	if in.Climate.HasSnow {
		values["snow_load"] = loadValue(in.Climate.Snow)
	}
	if in.Climate.HasWind {
		values["wind_load"] = loadValue(in.Climate.Wind)
	}
	return values
}

func placeholderRules(in Input) []Rule {
	values := PlaceholderValues(in)
	rules := make([]Rule, 0, len(PlaceholderKeys))
	for _, key := range PlaceholderKeys {
		rules = append(rules, Rule{Placeholder(key), values[key]})
	}
	return rules
}

// narrativeRules replace the category blocks found in the template with
// their expanded form. Blocks missing from the texts file produce no rule.
func narrativeRules(in Input) []Rule {
	var rules []Rule
	if in.Texts.GeneralInfo != "" {
		rules = append(rules, Rule{in.Texts.GeneralInfo, GeneralInfo(in)})
	}
	if in.Texts.ConstructionDescription != "" {
		rules = append(rules, Rule{in.Texts.ConstructionDescription, ConstructionDescription(in)})
	}
	if in.Texts.Conclusion != "" {
		rules = append(rules, Rule{in.Texts.Conclusion, Conclusion(in)})
	}
	return rules
}
