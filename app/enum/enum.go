// Package enum defines enumerations used across the blog.
package enum

//go:generate go run github.com/go-pkgz/enum@latest -type theme -lower
type theme int

const (
	themeSystem theme = iota // enum:alias=
	themeLight
	themeDark
)

//go:generate go run github.com/go-pkgz/enum@latest -type toggleEvent -lower
type toggleEvent int

const (
	toggleEventClick toggleEvent = iota
	toggleEventFocus
	toggleEventBlur
	toggleEventTouchStart
	toggleEventTouchMove
	toggleEventTouchEnd
	toggleEventTouchCancel
)

//go:generate go run github.com/go-pkgz/enum@latest -type target -lower
type target int

const (
	targetInput target = iota // enum:alias=
	targetTrack
	targetThumb
	targetIcon
)
