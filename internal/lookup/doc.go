// Package lookup provides the immutable name tables for DCSS species,
// backgrounds, and gods.
//
// Morgue files spell character builds two ways depending on game version:
// a compact four-letter code such as "MiBe", or a full phrase such as
// "Minotaur Berserker". The tables map both spellings to the canonical
// two-letter codes, with the full-name table always consulted before the
// abbreviation table.
//
// Tables are built once and injected into the classifier; they are never
// mutated after construction.
package lookup
