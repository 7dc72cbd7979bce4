// Package memory provides an in-process host for content types: a Registrar
// that keeps canonical arguments in memory and a Dispatcher that runs
// lifecycle callbacks by priority. It is intended for tests, development
// servers and tools that need the full lifecycle without an external host.
package memory
