// Package fonts resolves the typeface used to render pages.
//
// A font is named either by a built-in name or by a file path:
//
//	goregular   Go Regular (default, proportional)
//	gomono      Go Mono (fixed width)
//	gobold      Go Bold
//	goitalic    Go Italic
//	basic       7x13 bitmap face; the point size is ignored
//
// Strings containing a path separator, or ending in .ttf/.otf, are read
// from disk. When a font directory is configured, bare names are looked up
// there first ({dir}/{name}.ttf, then .otf) and fall back to the built-in
// fonts when not found.
package fonts
