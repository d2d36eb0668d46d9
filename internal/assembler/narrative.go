package assembler

import (
	"strconv"
	"strings"
	"time"

	"github.com/MeKo-Tech/rpgen/internal/catalog"
	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/passport"
)

// summaryParameters is the number of passport parameters quoted in the description.
const summaryParameters = 4

// DateLayout formats dates written into documents.
const DateLayout = "02.01.2006"

// Climate holds the optional normative climate loads of the region, kg/m².
type Climate struct {
	Snow    float64
	HasSnow bool
	Wind    float64
	HasWind bool
}

// Input is everything a document is generated from.
type Input struct {
	Product catalog.Product
	Data    *passport.TechnicalData
	Loads   Loads
	Region  string
	Climate Climate
	Texts   config.CategoryTexts
	Date    time.Time
}

// TechnicalParameters lists the first passport parameters as "name — value unit".
func TechnicalParameters(data *passport.TechnicalData) string {
	params := data.First(summaryParameters)
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func blockOr(text, fallback string) string {
	if text == "" {
		return fallback
	}
	return text
}

func loadValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GeneralInfo expands the general information block of the category.
func GeneralInfo(in Input) string {
	var b strings.Builder
	b.WriteString(blockOr(in.Texts.GeneralInfo, config.FallbackGeneralInfo))
	b.WriteString(" " + in.Product.Name)
	b.WriteString(" (артикул " + in.Product.Article + ").")
	b.WriteString(" Расчёт выполняется для региона " + in.Region)
	b.WriteString(" с учётом нормативных климатических воздействий")

	c := in.Climate
	if c.HasSnow {
		b.WriteString(" (снеговая нагрузка S₀ = " + loadValue(c.Snow) + " кг/м²")
	}
	if c.HasWind {
		if c.HasSnow {
			b.WriteString(", ")
		} else {
			b.WriteString(" (")
		}
		b.WriteString("ветровое давление W₀ = " + loadValue(c.Wind) + " кг/м²")
	}
	if c.HasSnow || c.HasWind {
		b.WriteString(")")
	}
	b.WriteString(".")
	return b.String()
}

// ConstructionDescription expands the construction description block with the
// user loads and the leading passport parameters.
func ConstructionDescription(in Input) string {
	var b strings.Builder
	b.WriteString(blockOr(in.Texts.ConstructionDescription, config.FallbackConstructionDescription))
	b.WriteString(".")
	b.WriteString(" В расчёт включено одновременное нахождение " + strconv.Itoa(in.Loads.ChildrenCount) + " детей массой")
	b.WriteString(" " + in.Loads.massChildText() + " кг каждый (суммарная статическая нагрузка " + in.Loads.totalMassText() + " кг).")
	b.WriteString(" При моделировании эксплуатационных воздействий приняты силы: Fh = " + in.Loads.fhText() +
		" Н и Fz = " + in.Loads.fzText() + " Н.")
	if params := TechnicalParameters(in.Data); params != "" {
		b.WriteString(" Основные геометрические параметры: " + params + ".")
	}
	return b.String()
}

// Conclusion expands the conclusion block.
func Conclusion(in Input) string {
	return blockOr(in.Texts.Conclusion, config.FallbackConclusion) +
		". Расчётные напряжения не превышают допускаемых значений;" +
		" запас прочности не ниже 1,2 относительно требований СП 16.13330 и СП 20.13330." +
		" Конструкция пригодна для безопасной эксплуатации при указанном режиме нагружения."
}
