package render

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// ErrEmptyText возвращается, когда в тексте нет ни одного слова.
var ErrEmptyText = errors.New("empty text, nothing to render")

// ErrMissingGlyphs возвращается, если в шрифте нет глифов для символов текста.
// Встроенный Go Regular не содержит арабской графики, для персидского текста
// нужен шрифт из output.font_path.
var ErrMissingGlyphs = errors.New("font has no glyphs for text")

var defaultPalette = []string{"#1b4965", "#5fa8d3", "#ca6702", "#9b2226", "#2a9d8f", "#6a4c93"}

// Option определяет функциональную опцию для настройки облака слов.
type Option func(*WordCloud)

// WithSize задает размер изображения в пикселях.
func WithSize(width, height int) Option {
	return func(w *WordCloud) {
		if width > 0 && height > 0 {
			w.width, w.height = width, height
		}
	}
}

// WithMaxWords ограничивает число слов на изображении.
func WithMaxWords(n int) Option {
	return func(w *WordCloud) {
		if n > 0 {
			w.maxWords = n
		}
	}
}

// WithFontSizes задает диапазон кеглей: самое редкое и самое частое слово.
func WithFontSizes(smallest, largest float64) Option {
	return func(w *WordCloud) {
		if smallest > 0 && largest >= smallest {
			w.minFont, w.maxFont = smallest, largest
		}
	}
}

// WithBackground задает цвет фона в формате #rrggbb.
func WithBackground(hex string) Option {
	return func(w *WordCloud) {
		if hex != "" {
			w.background = hex
		}
	}
}

// WithPalette задает цвета слов; цвета используются по кругу.
func WithPalette(colors ...string) Option {
	return func(w *WordCloud) {
		if len(colors) > 0 {
			w.palette = colors
		}
	}
}

// WithLogger задает опцию для установки логгера.
func WithLogger(l *slog.Logger) Option {
	return func(w *WordCloud) {
		if l != nil {
			w.log = l
		}
	}
}

// WordCloud рисует облако слов в PNG. Размер слова пропорционален его
// частоте, слова раскладываются по спирали от центра без наложений.
type WordCloud struct {
	width, height    int
	maxWords         int
	minFont, maxFont float64
	background       string
	palette          []string
	log              *slog.Logger
}

// NewWordCloud создает рендерер с настройками по умолчанию и переданными опциями.
func NewWordCloud(opts ...Option) ports.Renderer {
	w := &WordCloud{
		width:      1200,
		height:     800,
		maxWords:   150,
		minFont:    12,
		maxFont:    96,
		background: "#ffffff",
		palette:    defaultPalette,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type rect struct {
	x, y, w, h float64
}

func (r rect) intersects(o rect) bool {
	return r.x < o.x+o.w && o.x < r.x+r.w && r.y < o.y+o.h && o.y < r.y+r.h
}

// Render строит облако слов по тексту и сохраняет его в outPath.
// Пустой fontPath означает встроенный шрифт Go Regular (без арабской графики);
// текст, который шрифт не может нарисовать, дает ErrMissingGlyphs.
func (w *WordCloud) Render(text, fontPath, outPath string) error {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ErrEmptyText
	}

	ttf, err := loadFont(fontPath)
	if err != nil {
		return err
	}
	if r, ok := missingGlyph(ttf, text); ok {
		if fontPath == "" {
			return fmt.Errorf("%w: U+%04X (built-in font, set output.font_path)", ErrMissingGlyphs, r)
		}
		return fmt.Errorf("%w: U+%04X in %s", ErrMissingGlyphs, r, fontPath)
	}
	if fontPath == "" {
		w.log.Warn("Путь к шрифту не задан, используется встроенный шрифт")
	}

	freq := domain.NewTally()
	for _, word := range words {
		freq.Add(word)
	}
	ranked := freq.Top(w.maxWords)
	maxCount := float64(ranked[0].Count)

	dc := gg.NewContext(w.width, w.height)
	dc.SetHexColor(w.background)
	dc.Clear()

	var placed []rect
	skipped := 0
	for i, entry := range ranked {
		size := w.minFont + (w.maxFont-w.minFont)*float64(entry.Count)/maxCount
		dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{Size: size}))
		tw, th := dc.MeasureString(entry.Name)

		box, ok := w.place(tw, th, placed)
		if !ok {
			skipped++
			continue
		}
		placed = append(placed, box)
		dc.SetHexColor(w.palette[i%len(w.palette)])
		dc.DrawStringAnchored(entry.Name, box.x+box.w/2, box.y+box.h/2, 0.5, 0.5)
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create dir for %s: %w", outPath, err)
		}
	}
	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("failed to save word cloud %s: %w", outPath, err)
	}

	w.log.Info("Облако слов сохранено", "path", outPath, "words", len(placed), "skipped", skipped)
	return nil
}

// place ищет место для прямоугольника w×h на архимедовой спирали от центра.
func (w *WordCloud) place(tw, th float64, placed []rect) (rect, bool) {
	cx, cy := float64(w.width)/2, float64(w.height)/2
	limit := math.Hypot(cx, cy)
	for t := 0.0; ; t += 0.1 {
		r := 2 * t
		if r > limit {
			return rect{}, false
		}
		box := rect{
			x: cx + r*math.Cos(t) - tw/2,
			y: cy + r*math.Sin(t) - th/2,
			w: tw,
			h: th,
		}
		if box.x < 0 || box.y < 0 || box.x+box.w > float64(w.width) || box.y+box.h > float64(w.height) {
			continue
		}
		free := true
		for _, p := range placed {
			if box.intersects(p) {
				free = false
				break
			}
		}
		if free {
			return box, true
		}
	}
}

// missingGlyph возвращает первый видимый символ, для которого в шрифте нет глифа.
func missingGlyph(f *truetype.Font, text string) (rune, bool) {
	for _, r := range text {
		if unicode.IsSpace(r) || !unicode.IsGraphic(r) {
			continue
		}
		if f.Index(r) == 0 {
			return r, true
		}
	}
	return 0, false
}

func loadFont(path string) (*truetype.Font, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
		data = b
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", path, err)
	}
	return f, nil
}
