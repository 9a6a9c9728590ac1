package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
// Absence of a template or recipe is not an error; lookups return ok=false.

var (
	// World/host errors
	ErrPlayerUnavailable = errors.New("player position unavailable")
	ErrBadCoordKey       = errors.New("malformed coordinate key")

	// Catalog errors (fail fast at load time)
	ErrTemplateInvalid  = errors.New("machine template invalid")
	ErrRecipeInvalid    = errors.New("recipe entry invalid")
	ErrDuplicateBlock   = errors.New("duplicate block id in catalog")
	ErrDuplicateRecipe  = errors.New("duplicate recipe key in table")
	ErrUnknownProcessor = errors.New("recipe table for non-processing kind")
)
