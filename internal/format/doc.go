// Package format печатает результат раскрытия обратно в исходный текст.
//
// Назначение: точечные правки поверх исходного файла (Rewriter) и печать
// сгенерированных фрагментов ast.Code с отступами (RenderCode).
// Не делает: pretty-print всего файла; всё, что не тронуто правками, копируется байт в байт.
// Зависимости: internal/ast, internal/source.
package format
