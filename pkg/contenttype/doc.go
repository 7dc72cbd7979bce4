// Package contenttype provides a factory for declaring custom content types
// against a content-management host.
//
// A Factory turns a singular label, a plural label, a slug and an overrides
// map into the argument structure the host's registration call expects, and
// exposes the callbacks (single-action messages, bulk-action messages, admin
// columns, title placeholder) that make the type behave like a first-class
// item in the host's admin UI.
//
// The host itself is consumed through small interfaces (Registrar,
// Dispatcher, Localizer, ScreenProbe, Permalinker). Reference adapters live
// under host/ (in-memory and Postgres), localization under i18n/.
//
// Argument Strategy
//
// Built-in defaults are overlaid by the caller's overrides, one level deep.
// The "labels" entry is merged separately: labels derived from the singular
// and plural names are overlaid by any labels the caller supplied. The result
// is computed once and memoized until Register succeeds, after which the
// host's canonical arguments replace it.
package contenttype
