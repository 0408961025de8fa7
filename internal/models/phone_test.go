package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
		ok   bool
	}{
		{"89991234567", "+79991234567", true},
		{"+79991234567", "+79991234567", true},
		{"8 (999) 123-45-67", "+79991234567", true},
		{"7 999 123 45 67", "+79991234567", true},
		{"9991234567", "", false},
		{"+19991234567", "", false},
		{"899912345", "", false},
		{"abc", "", false},
		{"", "", false},
	} {
		got, ok := NormalizePhone(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestLooksLikePhone(t *testing.T) {
	assert.True(t, LooksLikePhone("8 999 123-45-67"))
	assert.False(t, LooksLikePhone("Отдел разработки"))
	assert.False(t, LooksLikePhone("Отдел 404"))
}

func TestValidFullName(t *testing.T) {
	assert.True(t, ValidFullName("Иванов Иван Иванович"))
	assert.True(t, ValidFullName("Петрова-Водкина Зинаида"))
	assert.False(t, ValidFullName("John Smith"))
	assert.False(t, ValidFullName("Иван"))
	assert.False(t, ValidFullName(""))
}
