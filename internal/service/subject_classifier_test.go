package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySubject(t *testing.T) {
	cases := []struct {
		name  string
		title string
		topic string
		want  string
	}{
		{"photosynthesis is biology", "Photosynthesis Basics", "", "Biology"},
		{"newton is physics", "Newton's Laws of Motion", "", "Physics"},
		{"unrelated text falls back", "Underwater Basket Weaving", "", SubjectOther},
		{"topic alone can classify", "", "Chemistry: acids and salts", "Chemistry"},
		{"weather beats geography keywords", "Storm patterns over mountain ranges", "", "Meteorology"},
		{"case and punctuation ignored", "PHOTO-SYNTHesis!!", "", "Biology"},
		{"solar system is astronomy", "The Solar System", "", "Astronomy"},
		{"empty input", "", "", SubjectOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifySubject(tc.title, tc.topic))
		})
	}
}

func TestClassifySubjectDeterministic(t *testing.T) {
	// 同一输入重复分类必须得到同一标签
	for i := 0; i < 5; i++ {
		assert.Equal(t, "Biology", ClassifySubject("Cell structure and DNA", ""))
	}
}

func TestNormalizeSubjectText(t *testing.T) {
	assert.Equal(t, "newtonslaws", normalizeSubjectText("Newton's Laws"))
	assert.Equal(t, "grade5", normalizeSubjectText("Grade 5"))
	assert.Equal(t, "", normalizeSubjectText("!!! ---"))
}
