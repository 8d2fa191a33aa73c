package source

import (
	"fmt"
	"sync"
)

// ContextID names the expansion chain that produced a span.
// RootContext is code written directly in a file.
type ContextID uint32

// RootContext is the context of hand-written top-level code.
const RootContext ContextID = 0

// ExpansionKind tells what kind of step created a context.
type ExpansionKind uint8

const (
	ExpnRoot ExpansionKind = iota
	// ExpnMacro is a user template macro (`macro m($a) { ... }`).
	ExpnMacro
	// ExpnBuiltin is a compiler-provided macro such as with_span!.
	ExpnBuiltin
)

func (k ExpansionKind) String() string {
	switch k {
	case ExpnRoot:
		return "root"
	case ExpnMacro:
		return "macro"
	case ExpnBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("ExpansionKind(%d)", uint8(k))
	}
}

// ExpansionInfo describes a new expansion step.
type ExpansionInfo struct {
	Kind     ExpansionKind
	Name     string
	CallSite Span // весь вызов `m!(...)`, его Ctxt становится родителем
	DefSite  Span // тело макроса
	External bool // макрос объявлен как extern
}

// ContextData is one node of the context tree.
type ContextData struct {
	ExpansionInfo
	Parent ContextID
	Depth  uint32 // root = 0
}

// Hygiene is an append-only arena of expansion contexts forming a tree rooted
// at RootContext. Every context's parent is the context of its call site, so
// walking call sites and walking parents visit the same chain.
type Hygiene struct {
	mu   sync.RWMutex
	data []ContextData
}

// NewHygiene returns a table holding only the root context.
func NewHygiene() *Hygiene {
	return &Hygiene{data: []ContextData{{}}}
}

// NewContext allocates a child of info.CallSite.Ctxt.
func (h *Hygiene) NewContext(info ExpansionInfo) ContextID {
	h.mu.Lock()
	defer h.mu.Unlock()
	parent := info.CallSite.Ctxt
	if int(parent) >= len(h.data) {
		parent = RootContext
		info.CallSite.Ctxt = RootContext
	}
	id := ContextID(len(h.data)) // #nosec G115 -- число раскрытий ограничено глубиной и размером файлов
	h.data = append(h.data, ContextData{
		ExpansionInfo: info,
		Parent:        parent,
		Depth:         h.data[parent].Depth + 1,
	})
	return id
}

// Len returns the number of contexts, root included.
func (h *Hygiene) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.data)
}

// Data returns the record of id.
func (h *Hygiene) Data(id ContextID) (ContextData, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if int(id) >= len(h.data) {
		return ContextData{}, false
	}
	return h.data[id], true
}

// Parent returns the parent of id; false for the root and unknown ids.
func (h *Hygiene) Parent(id ContextID) (ContextID, bool) {
	if id == RootContext {
		return RootContext, false
	}
	d, ok := h.Data(id)
	if !ok {
		return RootContext, false
	}
	return d.Parent, true
}

// Depth returns the number of expansion steps between id and the root.
func (h *Hygiene) Depth(id ContextID) uint32 {
	d, ok := h.Data(id)
	if !ok {
		return 0
	}
	return d.Depth
}

// ContextOf returns the context tag of span.
func (h *Hygiene) ContextOf(span Span) ContextID {
	return span.Ctxt
}

// IsAncestor reports whether anc is id or one of its ancestors.
func (h *Hygiene) IsAncestor(anc, id ContextID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if int(id) >= len(h.data) || int(anc) >= len(h.data) {
		return false
	}
	for steps := h.data[id].Depth; ; steps-- {
		if id == anc {
			return true
		}
		if steps == 0 {
			return false
		}
		id = h.data[id].Parent
	}
}

// CommonAncestor returns the deepest context that is an ancestor of both.
func (h *Hygiene) CommonAncestor(a, b ContextID) ContextID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if int(a) >= len(h.data) || int(b) >= len(h.data) {
		return RootContext
	}
	for h.data[a].Depth > h.data[b].Depth {
		a = h.data[a].Parent
	}
	for h.data[b].Depth > h.data[a].Depth {
		b = h.data[b].Parent
	}
	for a != b {
		a = h.data[a].Parent
		b = h.data[b].Parent
	}
	return a
}

// WalkToContext replaces span with the call site of its expansion until its
// context equals target. It reports false when the chain reaches the root (or
// an unknown context) without meeting target: the span then comes from an
// argument whose caller is outside target and must not be treated as
// contiguous with code written in target.
func (h *Hygiene) WalkToContext(span Span, target ContextID) (Span, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if int(span.Ctxt) >= len(h.data) {
		return span, false
	}
	// каждый шаг уменьшает глубину на единицу
	for steps := h.data[span.Ctxt].Depth; span.Ctxt != target && steps > 0; steps-- {
		span = h.data[span.Ctxt].CallSite
	}
	return span, span.Ctxt == target
}

// SourceCallSite walks span all the way to the root context.
func (h *Hygiene) SourceCallSite(span Span) Span {
	out, _ := h.WalkToContext(span, RootContext)
	return out
}

// InExternalExpansion reports whether span was produced by a macro declared
// extern. Lints never fire inside such expansions.
func (h *Hygiene) InExternalExpansion(span Span) bool {
	if span.Ctxt == RootContext {
		return false
	}
	d, ok := h.Data(span.Ctxt)
	return ok && d.External
}

// Join covers a and b, reconciling contexts: equal contexts give the plain
// union; when one context is an ancestor of the other the span from the
// deeper expansion wins; unrelated contexts are both walked to their common
// ancestor first.
func (h *Hygiene) Join(a, b Span) Span {
	if a.Ctxt == b.Ctxt {
		if a.File != b.File {
			return a
		}
		return a.Cover(b)
	}
	switch {
	case h.IsAncestor(a.Ctxt, b.Ctxt):
		return b
	case h.IsAncestor(b.Ctxt, a.Ctxt):
		return a
	}
	common := h.CommonAncestor(a.Ctxt, b.Ctxt)
	wa, okA := h.WalkToContext(a, common)
	wb, okB := h.WalkToContext(b, common)
	if !okA || !okB || wa.File != wb.File {
		return wa
	}
	return wa.Cover(wb)
}
