package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProficiencyLabel(t *testing.T) {
	tests := []struct {
		name        string
		proficiency float64
		want        string
	}{
		{name: "zero is beginner", proficiency: 0, want: "Beginner"},
		{name: "one is beginner", proficiency: 1, want: "Beginner"},
		{name: "boundary two stays beginner", proficiency: 2, want: "Beginner"},
		{name: "three is intermediate", proficiency: 3, want: "Intermediate"},
		{name: "boundary four stays intermediate", proficiency: 4, want: "Intermediate"},
		{name: "five is advanced", proficiency: 5, want: "Advanced"},
		{name: "above scale is advanced", proficiency: 9, want: "Advanced"},
		{name: "fractional boundary", proficiency: 4.5, want: "Advanced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProficiencyLabel(tt.proficiency))
		})
	}
}

func TestSkillLabel_NoProficiency(t *testing.T) {
	skill := Skill{Name: "Go"}
	assert.Equal(t, "", skill.Label())
}

func TestSkillLabel_WithProficiency(t *testing.T) {
	proficiency := 4.0
	skill := Skill{Name: "Python", Proficiency: &proficiency}
	assert.Equal(t, "Intermediate", skill.Label())
}
