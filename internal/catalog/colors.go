package catalog

import (
	"strconv"
	"strings"
)

// UnknownColor — значение для цветов, которые не удалось разобрать.
const UnknownColor = "Unknown"

type rgb struct {
	r, g, b int
}

// namedColors — палитра человекочитаемых имён (CSS-цвета).
// Порядок фиксирован, чтобы при равных расстояниях выбор был детерминированным.
var namedColors = []struct {
	name string
	val  rgb
}{
	{"black", rgb{0x00, 0x00, 0x00}},
	{"white", rgb{0xff, 0xff, 0xff}},
	{"gray", rgb{0x80, 0x80, 0x80}},
	{"silver", rgb{0xc0, 0xc0, 0xc0}},
	{"red", rgb{0xff, 0x00, 0x00}},
	{"maroon", rgb{0x80, 0x00, 0x00}},
	{"orange", rgb{0xff, 0xa5, 0x00}},
	{"yellow", rgb{0xff, 0xff, 0x00}},
	{"olive", rgb{0x80, 0x80, 0x00}},
	{"lime", rgb{0x00, 0xff, 0x00}},
	{"green", rgb{0x00, 0x80, 0x00}},
	{"teal", rgb{0x00, 0x80, 0x80}},
	{"cyan", rgb{0x00, 0xff, 0xff}},
	{"blue", rgb{0x00, 0x00, 0xff}},
	{"navy", rgb{0x00, 0x00, 0x80}},
	{"purple", rgb{0x80, 0x00, 0x80}},
	{"magenta", rgb{0xff, 0x00, 0xff}},
	{"pink", rgb{0xff, 0xc0, 0xcb}},
	{"brown", rgb{0xa5, 0x2a, 0x2a}},
	{"beige", rgb{0xf5, 0xf5, 0xdc}},
	{"khaki", rgb{0xf0, 0xe6, 0x8c}},
	{"gold", rgb{0xff, 0xd7, 0x00}},
	{"coral", rgb{0xff, 0x7f, 0x50}},
	{"salmon", rgb{0xfa, 0x80, 0x72}},
	{"turquoise", rgb{0x40, 0xe0, 0xd0}},
	{"indigo", rgb{0x4b, 0x00, 0x82}},
	{"violet", rgb{0xee, 0x82, 0xee}},
	{"lavender", rgb{0xe6, 0xe6, 0xfa}},
	{"ivory", rgb{0xff, 0xff, 0xf0}},
	{"tan", rgb{0xd2, 0xb4, 0x8c}},
	{"chocolate", rgb{0xd2, 0x69, 0x1e}},
	{"crimson", rgb{0xdc, 0x14, 0x3c}},
}

// ColorName возвращает ближайшее человекочитаемое имя для hex-кода цвета.
// Некорректный hex даёт UnknownColor, а не пропуск значения.
func ColorName(hex string) string {
	c, ok := parseHex(hex)
	if !ok {
		return UnknownColor
	}

	best := namedColors[0].name
	bestDist := -1
	for _, nc := range namedColors {
		dr := c.r - nc.val.r
		dg := c.g - nc.val.g
		db := c.b - nc.val.b
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = nc.name
		}
	}

	return best
}

// ColorNames отображает список hex-кодов в имена, сохраняя порядок и длину.
func ColorNames(hexes []string) []string {
	if len(hexes) == 0 {
		return nil
	}

	names := make([]string, len(hexes))
	for i, h := range hexes {
		names[i] = ColorName(h)
	}
	return names
}

// parseHex разбирает "#rgb" и "#rrggbb" (решётка опциональна).
func parseHex(hex string) (rgb, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return rgb{}, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, false
	}

	return rgb{
		r: int(v >> 16 & 0xff),
		g: int(v >> 8 & 0xff),
		b: int(v & 0xff),
	}, true
}
