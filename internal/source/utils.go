package source

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// AbsolutePath resolves p to an absolute, cleaned, slash-normalized path.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath expresses p relative to base. When p lies outside base (the
// relative form would need to climb above base with ".."), it falls back to
// an absolute, normalized form of p instead of an escaping relative path.
func RelativePath(p, base string) (string, error) {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		if filepath.IsAbs(p) {
			return normalizePath(p), nil
		}
		return AbsolutePath(p)
	}
	return filepath.ToSlash(rel), nil
}

// BaseName returns the final path segment of p.
func BaseName(p string) string {
	return filepath.Base(p)
}

// displayWidth returns the terminal column width of a byte run, honoring
// wide and zero-width runes instead of assuming one byte equals one column.
func displayWidth(b []byte) uint32 {
	return uint32(runewidth.StringWidth(string(b)))
}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	// Новый слайс для результата (максимум такой же длины, может быть короче).
	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		// Если встретили \r\n — заменяем на \n.
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим наибольший lineIdx[i] <= off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi // индекс строки (0-based)

	// Если off меньше первого элемента LineIdx, то это первая строка
	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// Смещение после \n с индексом line лежит уже на следующей строке
	if off > lineIdx[line] {
		return LineCol{Line: uint32(line + 2), Col: off - lineIdx[line]}
	}

	// Иначе off указывает на сам \n, завершающий строку line+1
	var startOff uint32
	if line == 0 {
		startOff = 0 // первая строка начинается с позиции 0
	} else {
		startOff = lineIdx[line-1] + 1 // следующая строка начинается после \n предыдущей
	}

	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
