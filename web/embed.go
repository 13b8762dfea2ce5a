// Package web embeds the mood journal's HTML templates and static assets.
package web

import "embed"

// TemplatesFS contains the layouts, pages and partials.
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS contains the stylesheet.
//
//go:embed all:static
var StaticFS embed.FS
