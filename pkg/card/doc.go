// Package card renders animated SVG profile cards.
//
// A card is produced in two steps. [Normalize] merges the caller's [Params]
// over per-field defaults (neon palette, 12px radius, 25px padding, fadeIn at
// normal speed, per-type sizes) and remaps unknown enum values to their
// defaults. [Render] then dispatches the normalized parameters to the builder
// registered for the card kind and serializes the resulting element tree.
//
// # Card Kinds
//
//   - stats: stars, repos, followers and forks in four blocks
//   - languages: up to six language rows with proportional bars
//   - streak: total, current and longest contribution streaks
//   - activity: a bar chart over the last 30 days
//   - contribution: a 53×7 contribution calendar
//   - quote: a word-wrapped quote with attribution
//   - custom: a single centered line of text
//   - banner: name and description over animated wave layers
//
// Unknown kinds render as stats.
//
// # Determinism
//
// Rendering performs no I/O and holds no shared state. Identical parameters
// produce byte-identical output, with two exceptions: the streak card reads
// [Params.Now] (or the wall clock when unset) for its "today" label, and demo
// mode fills missing contribution or activity data with a series seeded by
// the username and labels the card "DEMO DATA".
package card
