// Package views provides helper functions for use in templ templates of
// sites built on recetario.
package views

import (
	"fmt"
	"strings"

	"github.com/eringen/recetario"
)

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "inline-flex items-center rounded border border-ink bg-stone-100 px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em] hover:-translate-y-0.5 hover:shadow-sm transition"
	if active {
		base += " bg-ink text-white"
	}
	return base
}

// FormatMinutes renders a preparation time as "45 min" or "1 h 30 min".
func FormatMinutes(min int) string {
	if min < 60 {
		return fmt.Sprintf("%d min", min)
	}
	if min%60 == 0 {
		return fmt.Sprintf("%d h", min/60)
	}
	return fmt.Sprintf("%d h %d min", min/60, min%60)
}

// FormatPorciones renders a serving count with its unit.
func FormatPorciones(n int) string {
	if n == 1 {
		return "1 porción"
	}
	return fmt.Sprintf("%d porciones", n)
}

// Excerpt shortens a description to at most n runes for recipe cards.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// JoinTags formats a tag slice as a comma-separated string.
func JoinTags(tags []recetario.Tag) string {
	return strings.Join(recetario.TagNames(tags), ", ")
}

// VoteCount renders a tally count, clamping negatives from bad data to 0.
func VoteCount(n int) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("%d", n)
}
