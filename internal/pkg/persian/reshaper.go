package persian

import "strings"

// forms хранит контекстные формы буквы из блоков Arabic Presentation Forms.
// Нулевое значение означает, что формы нет (буква не соединяется с этой стороны).
type forms struct {
	isolated, final, initial, medial rune
}

func (f forms) joinsNext() bool { return f.initial != 0 }

func (f forms) joinsPrev() bool { return f.final != 0 }

var letterForms = map[rune]forms{
	'ء': {0xFE80, 0, 0, 0},
	'آ': {0xFE81, 0xFE82, 0, 0},
	'أ': {0xFE83, 0xFE84, 0, 0},
	'ؤ': {0xFE85, 0xFE86, 0, 0},
	'إ': {0xFE87, 0xFE88, 0, 0},
	'ئ': {0xFE89, 0xFE8A, 0xFE8B, 0xFE8C},
	'ا': {0xFE8D, 0xFE8E, 0, 0},
	'ب': {0xFE8F, 0xFE90, 0xFE91, 0xFE92},
	'ة': {0xFE93, 0xFE94, 0, 0},
	'ت': {0xFE95, 0xFE96, 0xFE97, 0xFE98},
	'ث': {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C},
	'ج': {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0},
	'ح': {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4},
	'خ': {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8},
	'د': {0xFEA9, 0xFEAA, 0, 0},
	'ذ': {0xFEAB, 0xFEAC, 0, 0},
	'ر': {0xFEAD, 0xFEAE, 0, 0},
	'ز': {0xFEAF, 0xFEB0, 0, 0},
	'س': {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4},
	'ش': {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8},
	'ص': {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC},
	'ض': {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0},
	'ط': {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4},
	'ظ': {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8},
	'ع': {0xFEC9, 0xFECA, 0xFECB, 0xFECC},
	'غ': {0xFECD, 0xFECE, 0xFECF, 0xFED0},
	'ـ': {0x0640, 0x0640, 0x0640, 0x0640},
	'ف': {0xFED1, 0xFED2, 0xFED3, 0xFED4},
	'ق': {0xFED5, 0xFED6, 0xFED7, 0xFED8},
	'ك': {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC},
	'ل': {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0},
	'م': {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4},
	'ن': {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8},
	'ه': {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC},
	'و': {0xFEED, 0xFEEE, 0, 0},
	'ى': {0xFEEF, 0xFEF0, 0, 0},
	'ي': {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4},
	// персидские буквы
	'پ': {0xFB56, 0xFB57, 0xFB58, 0xFB59},
	'چ': {0xFB7A, 0xFB7B, 0xFB7C, 0xFB7D},
	'ژ': {0xFB8A, 0xFB8B, 0, 0},
	'ک': {0xFB8E, 0xFB8F, 0xFB90, 0xFB91},
	'گ': {0xFB92, 0xFB93, 0xFB94, 0xFB95},
	'ی': {0xFBFC, 0xFBFD, 0xFBFE, 0xFBFF},
	'ۀ': {0xFBA4, 0xFBA5, 0, 0},
}

// лигатуры лам-алиф: изолированная и конечная формы
var lamAlef = map[rune][2]rune{
	'آ': {0xFEF5, 0xFEF6},
	'أ': {0xFEF7, 0xFEF8},
	'إ': {0xFEF9, 0xFEFA},
	'ا': {0xFEFB, 0xFEFC},
}

const lam = 'ل'

// isTransparent отбирает знаки, не влияющие на соединение букв (огласовки).
func isTransparent(r rune) bool {
	return (r >= '\u064b' && r <= '\u065f') || r == '\u0670'
}

// Reshape заменяет арабские и персидские буквы их контекстными формами
// (начальной, срединной, конечной, изолированной) и собирает лигатуры
// лам-алиф. Нужен для отрисовки соединенного письма шрифтом без шейпинга.
func Reshape(text string) string {
	src := []rune(text)
	if len(src) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(src); i++ {
		r := src[i]
		f, ok := letterForms[r]
		if !ok {
			b.WriteRune(r)
			continue
		}

		prevJoins := false
		if p := prevLetter(src, i); p >= 0 {
			if pf, ok := letterForms[src[p]]; ok && pf.joinsNext() {
				prevJoins = true
			}
		}

		next := nextLetter(src, i)

		if r == lam && next >= 0 {
			if lig, ok := lamAlef[src[next]]; ok {
				if prevJoins {
					b.WriteRune(lig[1])
				} else {
					b.WriteRune(lig[0])
				}
				// огласовки между лам и алиф сохраняются
				for j := i + 1; j < next; j++ {
					b.WriteRune(src[j])
				}
				i = next
				continue
			}
		}

		nextJoins := false
		if next >= 0 && f.joinsNext() {
			if nf, ok := letterForms[src[next]]; ok && nf.joinsPrev() {
				nextJoins = true
			}
		}

		b.WriteRune(pickForm(f, prevJoins, nextJoins))
	}
	return b.String()
}

func pickForm(f forms, prevJoins, nextJoins bool) rune {
	switch {
	case prevJoins && nextJoins && f.medial != 0:
		return f.medial
	case prevJoins && f.final != 0:
		return f.final
	case nextJoins && f.initial != 0:
		return f.initial
	}
	return f.isolated
}

// prevLetter возвращает индекс предыдущего значимого символа или -1.
func prevLetter(src []rune, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !isTransparent(src[j]) {
			return j
		}
	}
	return -1
}

// nextLetter возвращает индекс следующего значимого символа или -1.
func nextLetter(src []rune, i int) int {
	for j := i + 1; j < len(src); j++ {
		if !isTransparent(src[j]) {
			return j
		}
	}
	return -1
}
