// Package fuzztests houses Go fuzz harnesses for the shader front end
// (source -> lexer -> parser -> extract). They guard against panics, hangs
// and broken span invariants on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер
// и весь анализ.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
