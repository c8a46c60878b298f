package rocker

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/specialistvlad/rockerbuild/internal/coordinate"
	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/resolve"
)

const (
	// FamilyGroup and FamilyPrefix identify the pinned dependency family.
	FamilyGroup  = "com.fizzed"
	FamilyPrefix = "rocker-"
	// DefaultVersion is used when no override is configured.
	DefaultVersion = "1.3.0"
)

// ResolveVersion returns the override when it is non-empty, else DefaultVersion.
func ResolveVersion(override string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	return DefaultVersion
}

// InFamily reports whether c belongs to the pinned dependency family.
func InFamily(c coordinate.Coordinate) bool {
	return c.Group == FamilyGroup && strings.HasPrefix(c.Name, FamilyPrefix)
}

// VersionPolicy decides the family version once per build invocation.
type VersionPolicy struct {
	override func() string
	logger   *slog.Logger

	once    sync.Once
	version string
}

// NewVersionPolicy creates a policy that reads its override lazily, on the
// first call to Version.
func NewVersionPolicy(override func() string, logger *slog.Logger) *VersionPolicy {
	if logger == nil {
		logger = ctxlog.FromContext(context.Background())
	}
	return &VersionPolicy{override: override, logger: logger}
}

// Version returns the memoized family version.
func (p *VersionPolicy) Version() string {
	p.once.Do(func() {
		var override string
		if p.override != nil {
			override = p.override()
		}
		p.version = ResolveVersion(override)
		if !coordinate.IsSemver(p.version) {
			p.logger.Warn("Rocker version is not a semantic version; using it verbatim.", "version", p.version)
		}
		p.logger.Debug("Rocker version decided.", "version", p.version, "overridden", strings.TrimSpace(override) != "")
	})
	return p.version
}

// Rule is the resolution rule pinning every family request to Version.
// Requests outside the family are returned unchanged.
func (p *VersionPolicy) Rule() resolve.Rule {
	return func(requested coordinate.Coordinate) coordinate.Coordinate {
		if !InFamily(requested) {
			return requested
		}
		return requested.WithVersion(p.Version())
	}
}
