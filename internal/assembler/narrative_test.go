package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/passport"
)

func TestComputeLoads(t *testing.T) {
	l := ComputeLoads(10, 53.8)
	assert.InDelta(t, 538.0, l.TotalMass, 1e-9)
	assert.InDelta(t, 1076.0, l.Fh, 1e-9)
	assert.InDelta(t, 5380.0, l.Fz, 1e-9)
	assert.Equal(t, "53.8", l.massChildText())
	assert.Equal(t, "538.0", l.totalMassText())
	assert.Equal(t, "1076.0", l.fhText())
	assert.Equal(t, "5380", l.fzText())

	zero := ComputeLoads(0, 53.8)
	assert.Zero(t, zero.Fz)
	assert.Equal(t, "0", zero.fzText())
}

func TestGeneralInfoClimate(t *testing.T) {
	in := sampleInput()
	in.Texts = config.CategoryTexts{GeneralInfo: "Объектом расчета является игровой домик"}
	base := "Объектом расчета является игровой домик Домик Теремок (артикул GA9999)." +
		" Расчёт выполняется для региона Санкт-Петербург с учётом нормативных климатических воздействий"

	tests := []struct {
		name    string
		climate Climate
		want    string
	}{
		{"none", Climate{}, base + "."},
		{"snow", Climate{Snow: 180, HasSnow: true}, base + " (снеговая нагрузка S₀ = 180 кг/м²)."},
		{"wind", Climate{Wind: 23, HasWind: true}, base + " (ветровое давление W₀ = 23 кг/м²)."},
		{
			"both",
			Climate{Snow: 180, HasSnow: true, Wind: 23, HasWind: true},
			base + " (снеговая нагрузка S₀ = 180 кг/м², ветровое давление W₀ = 23 кг/м²).",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in.Climate = tt.climate
			assert.Equal(t, tt.want, GeneralInfo(in))
		})
	}
}

func TestNarrativeFallbacks(t *testing.T) {
	in := sampleInput()

	assert.Contains(t, GeneralInfo(in), config.FallbackGeneralInfo+" Домик Теремок")
	assert.Equal(t, config.FallbackConclusion+". Расчётные напряжения не превышают допускаемых значений;"+
		" запас прочности не ниже 1,2 относительно требований СП 16.13330 и СП 20.13330."+
		" Конструкция пригодна для безопасной эксплуатации при указанном режиме нагружения.", Conclusion(in))
	assert.Empty(t, narrativeRules(in))
}

func TestTechnicalParametersFirstFour(t *testing.T) {
	data := passport.NewTechnicalData()
	data.Set("Длина", "3000", "мм")
	data.Set("Ширина", "1500", "мм")
	data.Set("Высота", "1200", "мм")
	data.Set("Масса", "85", "кг")
	data.Set("Материал", "сосна", "")

	assert.Equal(t, "Длина — 3000 мм, Ширина — 1500 мм, Высота — 1200 мм, Масса — 85 кг", TechnicalParameters(data))
	assert.Empty(t, TechnicalParameters(nil))

	in := sampleInput()
	in.Data = data
	assert.Contains(t, ConstructionDescription(in), "Основные геометрические параметры: Длина — 3000 мм")
}
