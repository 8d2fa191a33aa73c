
// Package fuzztests houses Go fuzz harnesses that exercise the front half of
// rillint (source -> scanner/lexer -> expander -> parser -> lints). Its goal
// is to smoke test robustness: no panics, no hangs and no spans that point
// outside their file on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через сканер, лексер, парсер и линты.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/scanner, internal/lexer,
// internal/parser, internal/lint, internal/testkit.

package fuzztests
