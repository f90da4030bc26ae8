package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterBySearchMatchesNameOrEmail(t *testing.T) {
	patients := SampleCatalogAt(fixedNow).Patients

	byName := FilterBySearch(patients, "CHEN")
	require.Len(t, byName, 1)
	assert.Equal(t, "p2", byName[0].ID)

	byEmail := FilterBySearch(patients, "@law.com")
	require.Len(t, byEmail, 1)
	assert.Equal(t, "p6", byEmail[0].ID)

	multi := FilterBySearch(patients, "son")
	ids := make([]string, len(multi))
	for i, p := range multi {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"p4", "p5", "p6", "p8", "p10"}, ids)
}

func TestFilterBySearchNoMatchReturnsEmpty(t *testing.T) {
	got := FilterBySearch(SampleCatalogAt(fixedNow).Patients, "zzz-nobody")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterBySearchEmptyKeepsAll(t *testing.T) {
	patients := SampleCatalogAt(fixedNow).Patients
	assert.Equal(t, patients, FilterBySearch(patients, ""))
}

func TestFilterBySearchMatchesWhitespaceLiterally(t *testing.T) {
	patients := []Patient{
		{ID: "a", Name: "Ana", Email: "ana@example.com"},
		{ID: "b", Name: "Li Chen", Email: "li@example.com"},
	}
	got := FilterBySearch(patients, " ")
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	assert.Empty(t, FilterBySearch(patients, "  "))
}

func TestFilterByStatus(t *testing.T) {
	patients := SampleCatalogAt(fixedNow).Patients

	inactive := FilterByStatus(patients, PatientInactive)
	require.Len(t, inactive, 1)
	assert.Equal(t, "p8", inactive[0].ID)
	assert.Len(t, FilterByStatus(patients, PatientActive), 9)
	assert.Len(t, FilterByStatus(patients, ""), 10)
	assert.Empty(t, FilterByStatus(nil, PatientActive))
}

func TestSummarizePatients(t *testing.T) {
	summary := SummarizePatients(SampleCatalogAt(fixedNow).Patients, DefaultHighValueSpend)

	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 9, summary.Active)
	assert.Equal(t, 1, summary.Inactive)
	assert.Equal(t, 28505.0, summary.TotalSpent)
	assert.InDelta(t, 2850.5, summary.AverageSpend, 1e-9)
	assert.Equal(t, 10, summary.HighValueCount)
	assert.Equal(t, 1, summary.BirthdaysPerMonth)
}

func TestSummarizePatientsEmpty(t *testing.T) {
	summary := SummarizePatients(nil, DefaultHighValueSpend)
	assert.Zero(t, summary.AverageSpend)
	assert.Zero(t, summary.BirthdaysPerMonth)
}
