// Package expand раскрывает `@LockedWeakReference` на классах.
//
// Для одного аннотированного объявления фазы вызываются в фиксированном порядке:
// ExpandMemberAttributes (маркер `@RegisterWeakReference` на подходящих членах),
// ExpandMembers (поля `_name`), ExpandExtensions (тип-обёртка с блокировкой),
// затем ExpandAccessors для каждого помеченного члена файла.
// Все фазы используют один предикат CanLockWeakReference.
//
// File собирает фазы над целым файлом и печатает результат через format.Rewriter.
package expand
