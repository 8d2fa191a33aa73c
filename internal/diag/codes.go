package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectSemicolon   Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectType        Code = 2005
	SynExpectExpression  Code = 2006
	SynExpectColon       Code = 2007
	SynExpectBlock       Code = 2008
	SynForMissingIn      Code = 2009
	SynBadItem           Code = 2010
	SynChainedCompare    Code = 2011

	// Раскрытие макросов
	ExpUnknownMacro     Code = 3001
	ExpArgCount         Code = 3002
	ExpRecursionLimit   Code = 3003
	ExpUnknownMetavar   Code = 3004
	ExpBadBuiltinArgs   Code = 3005
	ExpDuplicateMacro   Code = 3006
	ExpTrailingTokens   Code = 3007
	ExpMacroInsideMacro Code = 3008

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Конфигурация
	CfgUnknownLint  Code = 5001
	CfgBadLevel     Code = 5002
	CfgUnknownKey   Code = 5003
	CfgDecodeFailed Code = 5004
	CfgBadValue     Code = 5005

	// Линты
	LintSuspiciousAssignmentFormatting Code = 6001
	LintSuspiciousUnaryOpFormatting    Code = 6002
	LintSuspiciousElseFormatting       Code = 6003
	LintPossibleMissingComma           Code = 6004
	LintNeedlessContinue               Code = 6005
	LintOverflowCheckConditional       Code = 6006
	LintEmptyStructsWithBrackets       Code = 6007
	LintEmptyEnumVariantsWithBrackets  Code = 6008
	LintManualStringNew                Code = 6009
	LintIterNthZero                    Code = 6010
	LintOrThenUnwrap                   Code = 6011
	LintManualOkOr                     Code = 6012
	LintUnnecessaryLazyEvaluations     Code = 6013
	LintBoolComparison                 Code = 6014
	LintDetectGenerated                Code = 6015

	// Наблюдаемость
	ObsTimings Code = 7001
)

var ( // todo расширить описания и использовать как notes
	codeDescription = map[Code]string{
		UnknownCode:                        "Unknown error",
		LexInfo:                            "Lexical information",
		LexUnknownChar:                     "Unknown character",
		LexUnterminatedString:              "Unterminated string",
		LexUnterminatedBlockComment:        "Unterminated block comment",
		LexBadNumber:                       "Bad number",
		LexUnterminatedChar:                "Unterminated char literal",
		SynInfo:                            "Syntax information",
		SynUnexpectedToken:                 "Unexpected token",
		SynUnclosedDelimiter:               "Unclosed delimiter",
		SynExpectSemicolon:                 "Expect semicolon",
		SynExpectIdentifier:                "Expect identifier",
		SynExpectType:                      "Expect type",
		SynExpectExpression:                "Expect expression",
		SynExpectColon:                     "Expect colon",
		SynExpectBlock:                     "Expect block",
		SynForMissingIn:                    "Missing 'in' in for loop",
		SynBadItem:                         "Expected an item",
		SynChainedCompare:                  "Comparison operators cannot be chained",
		ExpUnknownMacro:                    "Unknown macro",
		ExpArgCount:                        "Wrong number of macro arguments",
		ExpRecursionLimit:                  "Macro recursion limit reached",
		ExpUnknownMetavar:                  "Unknown macro metavariable",
		ExpBadBuiltinArgs:                  "Bad arguments to builtin macro",
		ExpDuplicateMacro:                  "Macro defined twice",
		ExpTrailingTokens:                  "Macro expansion left unparsed tokens",
		ExpMacroInsideMacro:                "Macro definitions are not allowed inside macro bodies",
		IOLoadFileError:                    "I/O load file error",
		CfgUnknownLint:                     "Unknown lint name",
		CfgBadLevel:                        "Bad lint level",
		CfgUnknownKey:                      "Unknown configuration key",
		CfgDecodeFailed:                    "Configuration could not be decoded",
		CfgBadValue:                        "Bad configuration value",
		LintSuspiciousAssignmentFormatting: "suspicious_assignment_formatting",
		LintSuspiciousUnaryOpFormatting:    "suspicious_unary_op_formatting",
		LintSuspiciousElseFormatting:       "suspicious_else_formatting",
		LintPossibleMissingComma:           "possible_missing_comma",
		LintNeedlessContinue:               "needless_continue",
		LintOverflowCheckConditional:       "overflow_check_conditional",
		LintEmptyStructsWithBrackets:       "empty_structs_with_brackets",
		LintEmptyEnumVariantsWithBrackets:  "empty_enum_variants_with_brackets",
		LintManualStringNew:                "manual_string_new",
		LintIterNthZero:                    "iter_nth_zero",
		LintOrThenUnwrap:                   "or_then_unwrap",
		LintManualOkOr:                     "manual_ok_or",
		LintUnnecessaryLazyEvaluations:     "unnecessary_lazy_evaluations",
		LintBoolComparison:                 "bool_comparison",
		LintDetectGenerated:                "detect_generated",
		ObsTimings:                         "Phase timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// IsLint reports whether c belongs to the lint range.
func (c Code) IsLint() bool {
	return c >= 6000 && c < 7000
}

func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
