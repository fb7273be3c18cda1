package client

import (
	"net/url"
)

// DecisionKind says what a route guard wants done with the navigation.
type DecisionKind int

const (
	// DecisionPending means the bootstrap probe has not finished; show
	// a loading affordance and do not navigate yet.
	DecisionPending DecisionKind = iota
	// DecisionAllow means all gates passed and content may render.
	DecisionAllow
	// DecisionRedirect means navigate to Target instead of rendering.
	DecisionRedirect
)

type Decision struct {
	Kind   DecisionKind
	Target string
}

// Guard is a declarative access rule for a protected route. Zero-value
// paths fall back to the portal defaults.
type Guard struct {
	RequiredRoles   []string
	RequireVerified bool

	LoginPath        string
	UnauthorizedPath string
	VerifyEmailPath  string
}

const (
	defaultLoginPath        = "/login"
	defaultUnauthorizedPath = "/unauthorized"
	defaultVerifyEmailPath  = "/verify-email"
)

// Evaluate decides what to do for a request to path given the current
// session state. Gates run in order: loading, authentication, role,
// verification. Navigation never happens while loading, which is what
// prevents a redirect flicker racing the bootstrap probe.
func (g Guard) Evaluate(session Session, loading bool, path string) Decision {
	if loading {
		return Decision{Kind: DecisionPending}
	}

	if !session.IsAuthenticated || session.User == nil {
		login := g.LoginPath
		if login == "" {
			login = defaultLoginPath
		}
		// Carry the return path so login can come back here.
		return Decision{
			Kind:   DecisionRedirect,
			Target: login + "?redirect=" + url.QueryEscape(path),
		}
	}

	if len(g.RequiredRoles) > 0 && !containsRole(g.RequiredRoles, session.User.Role) {
		target := g.UnauthorizedPath
		if target == "" {
			target = defaultUnauthorizedPath
		}
		return Decision{Kind: DecisionRedirect, Target: target}
	}

	if g.RequireVerified && !session.User.IsVerified {
		target := g.VerifyEmailPath
		if target == "" {
			target = defaultVerifyEmailPath
		}
		return Decision{Kind: DecisionRedirect, Target: target}
	}

	return Decision{Kind: DecisionAllow}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
