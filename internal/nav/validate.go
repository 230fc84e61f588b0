package nav

import (
	"fmt"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Severity indicates the importance level of a validation issue.
type Severity int

const (
	// SeverityInfo flags authoring drift worth knowing about.
	SeverityInfo Severity = iota
	// SeverityWarning flags problems that do not stop a site build.
	SeverityWarning
	// SeverityError flags navigation the renderer can not honor as declared.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Rule identifiers reported in Issue.Rule.
const (
	RuleDuplicateEntry    = "duplicate-entry"
	RuleDuplicateCategory = "duplicate-category"
	RuleEmptyCategory     = "empty-category"
	RuleMissingContent    = "missing-content"
	RuleMixedExtension    = "mixed-extension"
	RuleExplicitExtension = "explicit-extension"
)

// Issue is a single problem found in a navigation configuration.
type Issue struct {
	Rule     string
	Severity Severity
	Category Label
	Ref      ContentRef // empty for category-level issues
	Position int        // index within the category, -1 for category-level issues
	Message  string
}

// Structural reports whether the issue makes the navigation shape unusable.
func (i Issue) Structural() bool { return i.Rule == RuleDuplicateCategory }

// Issues is the ordered result of Validate.
type Issues []Issue

// HasErrors returns true if any error-level issues exist.
func (is Issues) HasErrors() bool { return is.ErrorCount() > 0 }

// HasWarnings returns true if any warning-level issues exist.
func (is Issues) HasWarnings() bool { return is.WarningCount() > 0 }

// ErrorCount returns the number of error-level issues.
func (is Issues) ErrorCount() int { return is.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (is Issues) WarningCount() int { return is.count(SeverityWarning) }

// InfoCount returns the number of informational issues.
func (is Issues) InfoCount() int { return is.count(SeverityInfo) }

func (is Issues) count(s Severity) int {
	n := 0
	for _, i := range is {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// ByRule returns the issues reported by one rule.
func (is Issues) ByRule(rule string) Issues {
	var out Issues
	for _, i := range is {
		if i.Rule == rule {
			out = append(out, i)
		}
	}
	return out
}

// Fatal returns a structural error for the first structural issue, or nil.
func (is Issues) Fatal() error {
	for _, i := range is {
		if i.Structural() {
			return derrors.ConfigError(i.Message).
				WithContext("category", i.Category.String()).
				WithContext("rule", i.Rule).
				Build()
		}
	}
	return nil
}

// ContentChecker reports whether a reference resolves to a content file.
type ContentChecker interface {
	Exists(ref ContentRef) bool
}

// Validate inspects cfg and returns every issue found, in declared category
// order. It never fails; the caller decides which severities are fatal.
// Missing-content checks run only when checker is non-nil.
func Validate(cfg *Config, checker ContentChecker) Issues {
	var issues Issues

	labels := make(map[Label]int, len(cfg.categories))
	bare := make(map[string]bool)
	for _, cat := range cfg.categories {
		for _, ref := range cat.Refs {
			if !ref.Qualified() {
				bare[ref.Slug()] = true
			}
		}
	}

	for _, cat := range cfg.categories {
		labels[cat.Label]++
		if labels[cat.Label] == 2 {
			issues = append(issues, Issue{
				Rule:     RuleDuplicateCategory,
				Severity: SeverityError,
				Category: cat.Label,
				Position: -1,
				Message:  fmt.Sprintf("category %q is declared more than once", cat.Label),
			})
		}

		if len(cat.Refs) == 0 {
			issues = append(issues, Issue{
				Rule:     RuleEmptyCategory,
				Severity: SeverityError,
				Category: cat.Label,
				Position: -1,
				Message:  fmt.Sprintf("category %q has no entries and will not be rendered", cat.Label),
			})
			continue
		}

		seen := make(map[ContentRef]bool, len(cat.Refs))
		for pos, ref := range cat.Refs {
			if seen[ref] {
				issues = append(issues, Issue{
					Rule:     RuleDuplicateEntry,
					Severity: SeverityWarning,
					Category: cat.Label,
					Ref:      ref,
					Position: pos,
					Message:  fmt.Sprintf("%q is listed more than once in %q", ref, cat.Label),
				})
				continue
			}
			seen[ref] = true

			if ref.Qualified() {
				if bare[ref.Slug()] {
					issues = append(issues, Issue{
						Rule:     RuleMixedExtension,
						Severity: SeverityWarning,
						Category: cat.Label,
						Ref:      ref,
						Position: pos,
						Message:  fmt.Sprintf("%q is also referenced without its extension as %q", ref, ref.Slug()),
					})
				} else {
					issues = append(issues, Issue{
						Rule:     RuleExplicitExtension,
						Severity: SeverityInfo,
						Category: cat.Label,
						Ref:      ref,
						Position: pos,
						Message:  fmt.Sprintf("%q names its file extension; other entries use bare slugs", ref),
					})
				}
			}

			if checker != nil && !checker.Exists(ref) {
				issues = append(issues, Issue{
					Rule:     RuleMissingContent,
					Severity: SeverityError,
					Category: cat.Label,
					Ref:      ref,
					Position: pos,
					Message:  fmt.Sprintf("%q does not resolve to a content file", ref),
				})
			}
		}
	}
	return issues
}
