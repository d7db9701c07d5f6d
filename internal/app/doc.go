// Package app wires the pulse-program pipeline together: it loads a program
// into the config model, paints the timeline, validates it, compiles the
// instruction list, and emits it through the selected driver session.
package app
