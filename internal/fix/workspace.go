package fix

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"rillint/internal/diag"
	"rillint/internal/source"
)

// workspace holds the edited text of every file touched so far. Edits keep
// the coordinates of the original file; offsets into the edited text are
// derived from the edits already committed.
type workspace struct {
	fs    *source.FileSet
	files map[source.FileID]*buffer
}

type buffer struct {
	file *source.File
	text []byte
	// committed edits, sorted by start
	edits []diag.TextEdit
}

func newWorkspace(fs *source.FileSet) *workspace {
	return &workspace{fs: fs, files: make(map[source.FileID]*buffer)}
}

func (ws *workspace) path(id source.FileID, mode string) string {
	f, ok := ws.fs.Lookup(id)
	if !ok {
		return ""
	}
	return f.FormatPath(mode, ws.fs.BaseDir())
}

// stage applies one fix. Nothing is committed unless every edit applies;
// the error text becomes the skip reason.
func (ws *workspace) stage(edits []diag.TextEdit) (int, error) {
	byFile := make(map[source.FileID][]diag.TextEdit)
	for _, e := range edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}

	staged := make(map[source.FileID]*buffer, len(byFile))
	for _, id := range slices.Sorted(maps.Keys(byFile)) {
		b, err := ws.buffer(id)
		if err != nil {
			return 0, err
		}
		next, err := b.with(byFile[id])
		if err != nil {
			return 0, err
		}
		staged[id] = next
	}
	maps.Copy(ws.files, staged)
	return len(edits), nil
}

func (ws *workspace) buffer(id source.FileID) (*buffer, error) {
	if b, ok := ws.files[id]; ok {
		return b, nil
	}
	f, ok := ws.fs.Lookup(id)
	if !ok {
		return nil, errors.New("target file is unknown")
	}
	if f.Flags&source.FileVirtual != 0 {
		return nil, errors.New("target file is virtual")
	}
	return &buffer{file: f, text: f.Content}, nil
}

// with returns a copy of b with edits applied.
func (b *buffer) with(edits []diag.TextEdit) (*buffer, error) {
	edits = slices.Clone(edits)
	slices.SortFunc(edits, compareEdits)
	for i, e := range edits {
		if e.Span.FromExpansion() {
			return nil, errors.New("edit inside a macro expansion")
		}
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(b.file.Content) {
			return nil, errors.New("edit span out of range")
		}
		if i > 0 && overlaps(edits[i-1], e) {
			return nil, errors.New("fix has overlapping edits")
		}
		for _, prev := range b.edits {
			if overlaps(prev, e) {
				return nil, errors.New("conflicts with previously applied edits")
			}
		}
	}

	text := slices.Clone(b.text)
	// с конца, чтобы не сдвигать ещё не применённые правки
	for _, e := range slices.Backward(edits) {
		start, end := b.shift(e.Span.Start, false), b.shift(e.Span.End, true)
		if e.Span.Empty() {
			end = start
		}
		if e.OldText != "" && string(text[start:end]) != e.OldText {
			return nil, errors.New("existing text does not match expected content")
		}
		text = slices.Concat(text[:start], []byte(e.NewText), text[end:])
	}

	merged := slices.Concat(b.edits, edits)
	slices.SortStableFunc(merged, compareEdits)
	return &buffer{file: b.file, text: text, edits: merged}, nil
}

// shift maps an offset in the original file to the edited text. Text
// inserted exactly at pos counts as before it, unless pos ends a replacement.
func (b *buffer) shift(pos uint32, end bool) int {
	out := int(pos)
	for _, e := range b.edits {
		if e.Span.End > pos || (end && e.Span.Start == pos) {
			break
		}
		out += len(e.NewText) - int(e.Span.Len())
	}
	return out
}

// flush writes every changed file through a temporary file in the same
// directory, restoring the line endings and BOM Load normalized away.
func (ws *workspace) flush() ([]FileChange, error) {
	changes := make([]FileChange, 0, len(ws.files))
	for _, id := range slices.Sorted(maps.Keys(ws.files)) {
		b := ws.files[id]
		if len(b.edits) == 0 {
			continue
		}
		if err := writeFile(b.file.Path, b.file.OnDisk(b.text)); err != nil {
			return changes, err
		}
		changes = append(changes, FileChange{Path: ws.path(id, "relative"), EditCount: len(b.edits)})
	}
	slices.SortStableFunc(changes, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })
	return changes, nil
}

func writeFile(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rillint-fix-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func compareEdits(a, b diag.TextEdit) int {
	return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
}

// overlaps treats spans as half-open. Two insertions never overlap; an
// insertion overlaps a replacement that strictly contains its position or
// starts at it.
func overlaps(a, b diag.TextEdit) bool {
	as, ae, bs, be := a.Span.Start, a.Span.End, b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs <= as && as < be
	case bs == be:
		return as <= bs && bs < ae
	}
	return as < be && bs < ae
}
