package types

import (
	"strconv"
	"strings"
)

// Format renders id the way it is written in source ("u8", "Option<&str>").
// Unknown types render as "_".
func (in *Interner) Format(id TypeID) string {
	var b strings.Builder
	in.format(&b, id)
	return b.String()
}

func (in *Interner) format(b *strings.Builder, id TypeID) {
	tt, ok := in.Lookup(id)
	if !ok {
		b.WriteString("_")
		return
	}
	switch tt.Kind {
	case KindUnit:
		b.WriteString("()")
	case KindNever:
		b.WriteString("!")
	case KindBool, KindChar, KindStr, KindString:
		b.WriteString(tt.Kind.String())
	case KindInt, KindUint, KindFloat:
		b.WriteString(numericName(tt))
	case KindArray:
		b.WriteByte('[')
		in.format(b, tt.Elem)
		b.WriteString("; ")
		b.WriteString(strconv.FormatUint(uint64(tt.Count), 10))
		b.WriteByte(']')
	case KindSlice:
		b.WriteByte('[')
		in.format(b, tt.Elem)
		b.WriteByte(']')
	case KindReference:
		b.WriteByte('&')
		if tt.Mutable {
			b.WriteString("mut ")
		}
		in.format(b, tt.Elem)
	case KindTuple:
		b.WriteByte('(')
		if info, ok := in.TupleInfo(id); ok {
			for i, e := range info.Elems {
				if i > 0 {
					b.WriteString(", ")
				}
				in.format(b, e)
			}
			if len(info.Elems) == 1 {
				b.WriteByte(',')
			}
		}
		b.WriteByte(')')
	case KindVec, KindOption, KindIter:
		b.WriteString(genericName(tt.Kind))
		b.WriteByte('<')
		in.format(b, tt.Elem)
		b.WriteByte('>')
	case KindResult:
		b.WriteString("Result<")
		in.format(b, tt.Elem)
		b.WriteString(", ")
		in.format(b, tt.Err)
		b.WriteByte('>')
	case KindStruct:
		if info, ok := in.StructInfo(id); ok {
			b.WriteString(info.Name)
		}
	case KindEnum:
		if info, ok := in.EnumInfo(id); ok {
			b.WriteString(info.Name)
		}
	default:
		b.WriteString("_")
	}
}

func genericName(k Kind) string {
	switch k {
	case KindVec:
		return "Vec"
	case KindOption:
		return "Option"
	default:
		return "Iter"
	}
}

func numericName(tt Type) string {
	prefix := "i"
	switch tt.Kind {
	case KindUint:
		prefix = "u"
	case KindFloat:
		if tt.Width == WidthAny {
			return "{float}"
		}
		prefix = "f"
	}
	switch tt.Width {
	case WidthAny:
		return "{integer}"
	case WidthSize:
		return prefix + "size"
	}
	return prefix + strconv.Itoa(int(tt.Width))
}
