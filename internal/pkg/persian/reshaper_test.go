package persian

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReshape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Пустая строка", "", ""},
		{"Латиница не меняется", "abc 123", "abc 123"},
		{"Одиночная буква", "ب", "\ufe8f"},
		{"Начальная и конечная формы", "با", "\ufe91\ufe8e"},
		{"Срединная форма", "ببب", "\ufe91\ufe92\ufe90"},
		{"Лигатура лам-алиф", "سلام", "\ufeb3\ufefc\ufee1"},
		{"Изолированная лам-алиф", "لا", "\ufefb"},
		{"Пробел разрывает соединение", "ب ب", "\ufe8f \ufe8f"},
		{"Огласовки прозрачны", "ب\u0650ب", "\ufe91\u0650\ufe90"},
		{"Персидские буквы", "پی", "\ufb58\ufbfd"},
		{"Хамза не соединяется с предыдущей буквой", "شیء", "\ufeb7\ufbfd\ufe80"},
		{"Хе с хамзой в конце слова", "خانۀ", "\ufea7\ufe8e\ufee7\ufba5"},
		{"Хе с хамзой после несоединяемой буквы", "دۀ", "\ufea9\ufba4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reshape(tt.input))
		})
	}
}

func TestStripInvisible(t *testing.T) {
	assert.Equal(t, "کتابها", StripInvisible("کتاب\u200cها"))
	assert.Equal(t, "ab", StripInvisible("\u200ba\u2063\u200fb\U0001f979"))
	assert.Equal(t, "", StripInvisible(""))
}
