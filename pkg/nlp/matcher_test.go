package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{
			Variants: []string{"hola", "buenos dias"},
			Answer:   "¡Hola! ¿En qué te ayudo?",
			Category: CategoryGreeting,
		},
		{
			Variants: []string{"adios", "hasta luego"},
			Answer:   "¡Hasta pronto!",
			Category: CategoryFarewell,
		},
		{
			Variants: []string{"cual es el horario de atencion de la municipalidad"},
			Answer:   "Lunes a viernes de 8:30 a 14:00.",
			Category: CategoryMunicipal,
		},
		{
			Variants: []string{"como pago mis contribuciones"},
			Answer:   "En la Tesorería o en línea.",
			Category: CategoryMunicipal,
		},
		{
			Variants: []string{"como saco el permiso de circulacion"},
			Answer:   "En el Departamento de Tránsito.",
			Category: CategoryMunicipal,
		},
	}
}

func TestMatcherExactMatch(t *testing.T) {
	m := NewMatcher(testEntries())

	result := m.Match("¿Cuál es el horario de atención de la municipalidad?")
	require.Equal(t, MatchAnswered, result.Kind)
	assert.Equal(t, "Lunes a viernes de 8:30 a 14:00.", result.Answer)
	assert.Equal(t, ScoreExact, result.BestScore)
}

func TestMatcherFuzzyAnswer(t *testing.T) {
	m := NewMatcher(testEntries())

	// one typo away from a known variant
	result := m.Match("cual es el horario de atencion de la municipalida")
	require.Equal(t, MatchAnswered, result.Kind)
	assert.Equal(t, "Lunes a viernes de 8:30 a 14:00.", result.Answer)
	assert.GreaterOrEqual(t, result.BestScore, ThresholdHigh)
}

func TestMatcherFarewellPriority(t *testing.T) {
	m := NewMatcher([]Entry{
		{
			Variants: []string{"adios amigo"},
			Answer:   "¡Hasta pronto!",
			Category: CategoryFarewell,
		},
		{
			Variants: []string{"adios amigos"},
			Answer:   "respuesta municipal",
			Category: CategoryMunicipal,
		},
	})

	// one typo from both variants, so both clear the high threshold
	result := m.Match("adios amigoz")
	require.Equal(t, MatchAnswered, result.Kind)
	assert.Equal(t, CategoryFarewell, result.Category)
	assert.Equal(t, "¡Hasta pronto!", result.Answer)
}

func TestMatcherClarifyBand(t *testing.T) {
	m := NewMatcher([]Entry{
		{
			Variants: []string{"como pago mis contribuciones"},
			Answer:   "En la Tesorería o en línea.",
			Category: CategoryMunicipal,
		},
	})

	// dropping a word lands the score in the confirm band
	result := m.Match("como pago contribuciones")
	require.Equal(t, MatchClarify, result.Kind)
	require.NotNil(t, result.Candidate)
	assert.Equal(t, "como pago mis contribuciones", result.Candidate.Variant)
	assert.GreaterOrEqual(t, result.BestScore, ConfirmBandLow)
	assert.Less(t, result.BestScore, ThresholdHigh)
}

func TestMatcherChooseList(t *testing.T) {
	m := NewMatcher([]Entry{
		{
			Variants: []string{"horario de atencion del departamento de transito"},
			Answer:   "Tránsito: 8:30 a 13:30.",
			Category: CategoryMunicipal,
		},
		{
			Variants: []string{"horario de atencion del departamento de rentas"},
			Answer:   "Rentas: 8:30 a 14:00.",
			Category: CategoryMunicipal,
		},
	})

	// shares enough tokens with both entries without favoring either
	result := m.Match("horario de atencion del departamento")
	require.Equal(t, MatchChoose, result.Kind)
	require.Len(t, result.Choices, 2)
	assert.LessOrEqual(t, len(result.Choices), MaxChoices)
}

func TestMatcherTokenOverlapFallback(t *testing.T) {
	m := NewMatcher(testEntries())

	// low edit-distance similarity but several shared content words
	result := m.Match("oiga y el permiso de circulacion de mi auto viejo como lo saco")
	require.Equal(t, MatchAnswered, result.Kind)
	assert.Equal(t, "En el Departamento de Tránsito.", result.Answer)
}

func TestMatcherMiss(t *testing.T) {
	m := NewMatcher(testEntries())

	result := m.Match("quiero adoptar un perro del canil municipal")
	require.Equal(t, MatchNone, result.Kind)
	assert.NotEmpty(t, result.BestVariant)
	assert.Less(t, result.BestScore, ConfirmBandLow)
}

func TestMatcherGreetingDroppedWhenMixed(t *testing.T) {
	candidates := []Candidate{
		{Variant: "hola", Category: CategoryGreeting, Score: 95},
		{Variant: "como pago mis contribuciones", Category: CategoryMunicipal, Score: 92},
	}

	survivors := filterByCategory(candidates)
	require.Len(t, survivors, 1)
	assert.Equal(t, CategoryMunicipal, survivors[0].Category)
}
