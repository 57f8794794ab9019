// Package quote serves the developer quote shown on quote cards.
//
// A [Service] caches one quote per hour and asks its primary [Provider]
// (usually [GenAI]) for a fresh one, falling back to the [Static] list when the
// primary fails or is not configured.
package quote
