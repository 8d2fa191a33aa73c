package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
)

var (
	crlf = []byte("\r\n")
	bom  = []byte{0xEF, 0xBB, 0xBF}
)

// normalizeCRLF turns \r\n into \n; a lone \r stays.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte{'\n'}), true
}

func removeBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, bom)
}

// OnDisk turns text in the normalized form back into the file's on-disk
// form: CRLF endings and the BOM come back if Load removed them. A file
// that mixed LF and CRLF is written with CRLF throughout.
func (f *File) OnDisk(text []byte) []byte {
	if f.Flags&FileNormalizedCRLF != 0 {
		text, _ = normalizeCRLF(text)
		text = bytes.ReplaceAll(text, []byte{'\n'}, crlf)
	}
	if f.Flags&FileHadBOM != 0 {
		text = slices.Concat(bom, text)
	}
	return text
}

// looksBinary проверяет первые 8 KiB на NUL-байты.
func looksBinary(content []byte) bool {
	head := content
	if len(head) > 8<<10 {
		head = head[:8<<10]
	}
	return bytes.IndexByte(head, 0) >= 0
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- Add rejects content past 4 GiB
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим первый lineIdx[i] >= off
	line, _ := slices.BinarySearch(lineIdx, off)

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1} // #nosec G115 -- line < len(lineIdx)+1
}

// lineStart returns the offset of the first byte of the line containing off.
func lineStart(lineIdx []uint32, off uint32) uint32 {
	line, _ := slices.BinarySearch(lineIdx, off)
	if line == 0 {
		return 0
	}
	return lineIdx[line-1] + 1
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns p as an absolute slash-separated path.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(filepath.FromSlash(p))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// RelativePath returns p relative to baseDir. Paths outside baseDir are
// returned absolute rather than with a chain of "../".
func RelativePath(p, baseDir string) (string, error) {
	abs, err := AbsolutePath(p)
	if err != nil {
		return "", err
	}
	base, err := AbsolutePath(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(filepath.FromSlash(base), filepath.FromSlash(abs))
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return abs, nil
	}
	return rel, nil
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(filepath.FromSlash(p))
}
