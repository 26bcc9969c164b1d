package router

import (
	"log"
	"sync"

	"datashare/shared"
)

const SessionExpiredNotice = "Session expired, please log in again"

// Session is the part of the session store the guard depends on.
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
	GetCurrentUser() (shared.User, error)
	Logout()
}

// Expirer clears a session rejected by the server, reporting whether there was
// an active session to clear.
type Expirer interface {
	Expire() bool
}

// Decision is the outcome of running the guard for a navigation.
type Decision struct {
	Location Location
	Redirect bool
	Notice   string
}

func proceed(to Location) Decision {
	return Decision{Location: to}
}

func redirect(to Name, notice string) Decision {
	return Decision{Location: To(to), Redirect: true, Notice: notice}
}

func (d Decision) sessionExpired() bool {
	return d.Redirect && d.Location.Name == Home && d.Notice == SessionExpiredNotice
}

// Guard decides whether navigation to a location may proceed or has to be
// redirected elsewhere. Routes requiring auth validate the token with the
// server before entering.
func Guard(session Session, to Location) Decision {
	route, ok := to.Route()
	if !ok {
		return redirect(Home, "")
	}

	loggedIn := session.IsAuthenticated()
	if loggedIn && (route.Name == Home || route.Name == Login || route.Name == Register) {
		return redirect(Dashboard, "")
	}

	if !route.RequiresAuth {
		return proceed(to)
	} else if !loggedIn {
		return redirect(Login, "")
	}

	if _, err := session.GetCurrentUser(); err != nil {
		log.Printf("Token validation failed: %v\n", err)
		session.Logout()
		return redirect(Home, SessionExpiredNotice)
	}

	if route.RequiresAdmin && !session.IsAdmin() {
		return redirect(Dashboard, "")
	}

	return proceed(to)
}

// Router runs the guard for each navigation and tracks redirects raised
// outside of navigation (a 401 during a view).
type Router struct {
	session Session

	mu      sync.Mutex
	pending *Decision
}

func New(session Session) *Router {
	return &Router{session: session}
}

// Navigate runs the guard for a navigation to `to`. A session-expired redirect
// decided here replaces any redirect raised while validating, so the user is
// only sent home once.
func (r *Router) Navigate(to Location) Decision {
	decision := Guard(r.session, to)
	if decision.sessionExpired() {
		r.mu.Lock()
		r.pending = nil
		r.mu.Unlock()
	}

	return decision
}

// Redirect records a pending redirect. If one is already pending, the new one
// is ignored.
func (r *Router) Redirect(to Location, notice string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		return
	}

	r.pending = &Decision{Location: to, Redirect: true, Notice: notice}
}

// TakeRedirect returns and clears the pending redirect, if any.
func (r *Router) TakeRedirect() (Decision, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		return Decision{}, false
	}

	decision := *r.pending
	r.pending = nil
	return decision, true
}

// UnauthorizedHandler returns the hook for api.Context.OnUnauthorized: the
// session is cleared and, if it was still active, a redirect home is queued.
func UnauthorizedHandler(r *Router, session Expirer) func() {
	return func() {
		if session.Expire() {
			r.Redirect(To(Home), SessionExpiredNotice)
		}
	}
}
