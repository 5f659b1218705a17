package formfields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
)

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"code=JAVA101", "titre=Intro = Java", "code=WEB201"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"code": "WEB201", "titre": "Intro = Java"}, got)

	_, err = ParseAssignments([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseAssignments([]string{"=x"})
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	credits := 3
	form := dto.CourseForm{Code: "OLD", Credits: &credits}

	err := Apply(&form, map[string]string{
		"code":        "JAVA101",
		"FormateurId": "7",
		"heures":      "40",
		"credits":     "",
	})
	require.NoError(t, err)
	assert.Equal(t, "JAVA101", form.Code)
	require.NotNil(t, form.FormateurID)
	assert.Equal(t, int64(7), *form.FormateurID)
	require.NotNil(t, form.Heures)
	assert.Equal(t, 40, *form.Heures)
	assert.Nil(t, form.Credits, "an empty value clears a pointer field")

	var grade dto.GradeForm
	require.NoError(t, Apply(&grade, map[string]string{"valeur": "18.5"}))
	assert.Equal(t, 18.5, grade.Valeur)

	var reg dto.RegistrationForm
	require.NoError(t, Apply(&reg, map[string]string{"statut": "ANNULEE"}))
	assert.Equal(t, models.StatusCancelled, reg.Statut)
}

func TestApply_errors(t *testing.T) {
	var form dto.CourseForm

	err := Apply(&form, map[string]string{"zeta": "1", "alpha": "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha, zeta")

	assert.Error(t, Apply(&form, map[string]string{"credits": "three"}))
	assert.Error(t, Apply(form, map[string]string{"code": "X"}))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"etudiantId", "coursId", "valeur"}, Names(&dto.GradeForm{}))
	assert.Nil(t, Names(42))
}
