// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

// Package i18n provides locale resolution and message printing for user-facing
// inventory messages.
package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

var (
	supported = []language.Tag{language.English, language.German}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// MatchTags returns the supported tag that best matches the preferred tags.
func MatchTags(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[index]
}

// ParseTag parses a language value and matches it against the supported tags.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	return MatchTags(tag), true
}

// ResolveTag determines the best language tag for the request. The lang query
// parameter wins over the Accept-Language header.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTags(tags...)
		}
	}
	return Default()
}

type printerKey struct{}

// IntoContext returns a copy of ctx that carries printer.
func IntoContext(ctx context.Context, printer *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey{}, printer)
}

// PrinterFromContext returns the printer stored in ctx, or nil.
func PrinterFromContext(ctx context.Context) *message.Printer {
	if ctx == nil {
		return nil
	}
	printer, _ := ctx.Value(printerKey{}).(*message.Printer)
	return printer
}
