// Package project contains the pure business logic for project operations.
package project

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateProjectContext provides context for project creation guards.
type CreateProjectContext struct {
	Name string
}

// OpenProjectContext provides context for project open guards.
type OpenProjectContext struct {
	Name      string
	InCatalog bool
}

// CanCreateProject evaluates whether a project can be created.
// Rules:
// - Name must not be empty
// - Name must be usable as a file name (no path separators, not "." or "..")
func CanCreateProject(ctx CreateProjectContext) GuardResult {
	return checkName(ctx.Name)
}

// CanOpenProject evaluates whether a project can be opened.
// Rules:
// - Name must be valid
// - Name must be listed in the catalog
func CanOpenProject(ctx OpenProjectContext) GuardResult {
	if r := checkName(ctx.Name); !r.Allowed {
		return r
	}
	if !ctx.InCatalog {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("project %s not found\nHint: list projects with: planner project list", ctx.Name),
		}
	}
	return GuardResult{Allowed: true}
}

func checkName(name string) GuardResult {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "project name cannot be empty",
		}
	}
	if trimmed != name {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("project name %q has leading or trailing spaces", name),
		}
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("project name %q cannot be used as a file name", name),
		}
	}
	// Dotfiles are skipped when listing stored projects.
	if strings.HasPrefix(name, ".") {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("project name %q cannot start with a dot", name),
		}
	}
	return GuardResult{Allowed: true}
}
