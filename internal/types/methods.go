package types

// MethodCall describes a method call site for result lookup.
type MethodCall struct {
	Recv TypeID
	Name string
	Args []TypeID
	// Expected is the type the context wants, used by `into`, `collect`
	// and `parse`.
	Expected TypeID
}

// MethodResult returns the type of a call to a well-known method of the
// built-in types. References on the receiver are stripped first.
func (in *Interner) MethodResult(call MethodCall) TypeID {
	recv := in.Deref(call.Recv)
	tt, _ := in.Lookup(recv)

	switch call.Name {
	case "clone":
		return recv
	case "into", "parse", "collect", "try_into":
		return call.Expected
	case "to_string":
		return in.builtins.String
	case "eq", "ne", "lt", "le", "gt", "ge", "is_empty", "contains", "starts_with", "ends_with":
		return in.builtins.Bool
	case "len", "count", "capacity":
		return in.builtins.Usize
	}

	switch tt.Kind {
	case KindStr, KindString:
		return in.strMethod(tt.Kind, call)
	case KindOption:
		return in.optionMethod(recv, tt, call)
	case KindResult:
		return in.resultMethod(tt, call)
	case KindVec, KindArray, KindSlice:
		return in.seqMethod(tt, call)
	case KindIter:
		return in.iterMethod(recv, tt, call)
	case KindInt, KindUint, KindFloat:
		return in.numMethod(recv, call)
	}
	return NoTypeID
}

func (in *Interner) strMethod(kind Kind, call MethodCall) TypeID {
	switch call.Name {
	case "to_owned":
		return in.builtins.String
	case "as_str", "trim", "trim_start", "trim_end":
		return in.builtins.StrRef
	case "chars":
		return in.Intern(MakeIter(in.builtins.Char))
	case "bytes":
		return in.Intern(MakeIter(in.builtins.U8))
	case "lines", "split", "split_whitespace":
		return in.Intern(MakeIter(in.builtins.StrRef))
	case "push_str", "push", "clear":
		if kind == KindString {
			return in.builtins.Unit
		}
	}
	return NoTypeID
}

func (in *Interner) optionMethod(recv TypeID, tt Type, call MethodCall) TypeID {
	switch call.Name {
	case "unwrap", "expect", "unwrap_or", "unwrap_or_else", "unwrap_or_default", "unwrap_unchecked", "get_or_insert_with":
		return tt.Elem
	case "is_some", "is_none", "is_some_and", "is_none_or":
		return in.builtins.Bool
	case "or", "or_else", "xor", "filter", "take", "replace":
		return recv
	case "ok_or", "ok_or_else":
		var errType TypeID
		if len(call.Args) > 0 && call.Name == "ok_or" {
			errType = call.Args[0]
		}
		return in.Intern(MakeResult(tt.Elem, errType))
	case "as_ref":
		return in.Intern(MakeOption(in.Intern(MakeReference(tt.Elem, false))))
	case "as_mut":
		return in.Intern(MakeOption(in.Intern(MakeReference(tt.Elem, true))))
	case "cloned", "copied":
		return in.Intern(MakeOption(in.Deref(tt.Elem)))
	case "iter":
		return in.Intern(MakeIter(in.Intern(MakeReference(tt.Elem, false))))
	case "map", "and_then":
		return in.Intern(MakeOption(NoTypeID))
	}
	return NoTypeID
}

func (in *Interner) resultMethod(tt Type, call MethodCall) TypeID {
	switch call.Name {
	case "unwrap", "expect", "unwrap_or", "unwrap_or_else", "unwrap_or_default":
		return tt.Elem
	case "unwrap_err", "expect_err":
		return tt.Err
	case "ok":
		return in.Intern(MakeOption(tt.Elem))
	case "err":
		return in.Intern(MakeOption(tt.Err))
	case "is_ok", "is_err", "is_ok_and", "is_err_and":
		return in.builtins.Bool
	case "or", "or_else":
		return in.Intern(MakeResult(tt.Elem, NoTypeID))
	case "map_err":
		return in.Intern(MakeResult(tt.Elem, NoTypeID))
	case "map", "and_then":
		return in.Intern(MakeResult(NoTypeID, tt.Err))
	case "as_ref":
		return in.Intern(MakeResult(in.Intern(MakeReference(tt.Elem, false)), in.Intern(MakeReference(tt.Err, false))))
	}
	return NoTypeID
}

func (in *Interner) seqMethod(tt Type, call MethodCall) TypeID {
	switch call.Name {
	case "iter":
		return in.Intern(MakeIter(in.Intern(MakeReference(tt.Elem, false))))
	case "iter_mut":
		return in.Intern(MakeIter(in.Intern(MakeReference(tt.Elem, true))))
	case "into_iter", "drain":
		return in.Intern(MakeIter(tt.Elem))
	case "get", "first", "last":
		return in.Intern(MakeOption(in.Intern(MakeReference(tt.Elem, false))))
	case "pop":
		return in.Intern(MakeOption(tt.Elem))
	case "push", "clear", "sort", "reverse", "truncate":
		return in.builtins.Unit
	}
	return NoTypeID
}

func (in *Interner) iterMethod(recv TypeID, tt Type, call MethodCall) TypeID {
	switch call.Name {
	case "next", "nth", "last", "find", "min", "max", "next_back", "nth_back":
		return in.Intern(MakeOption(tt.Elem))
	case "filter", "skip", "take", "rev", "step_by", "skip_while", "take_while", "chain", "by_ref", "peekable", "fuse":
		return recv
	case "cloned", "copied":
		return in.Intern(MakeIter(in.Deref(tt.Elem)))
	case "map", "filter_map", "flat_map", "zip", "enumerate":
		return in.Intern(MakeIter(NoTypeID))
	case "any", "all":
		return in.builtins.Bool
	case "sum", "product":
		if call.Expected != NoTypeID {
			return call.Expected
		}
		return in.Deref(tt.Elem)
	case "position":
		return in.Intern(MakeOption(in.builtins.Usize))
	}
	return NoTypeID
}

func (in *Interner) numMethod(recv TypeID, call MethodCall) TypeID {
	switch call.Name {
	case "abs", "pow", "min", "max", "wrapping_add", "wrapping_sub", "wrapping_mul", "saturating_add",
		"saturating_sub", "saturating_mul", "rem_euclid", "signum", "clamp":
		return recv
	case "checked_add", "checked_sub", "checked_mul", "checked_div", "checked_rem":
		return in.Intern(MakeOption(recv))
	case "overflowing_add", "overflowing_sub", "overflowing_mul":
		return in.RegisterTuple([]TypeID{recv, in.builtins.Bool})
	case "is_positive", "is_negative", "is_nan", "is_power_of_two":
		return in.builtins.Bool
	}
	return NoTypeID
}
