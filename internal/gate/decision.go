// Package gate implements the request gating pipeline: status gate, role
// gate, agency context resolution and subscription gate. Everything here is
// transport-agnostic; the HTTP layer translates decisions into responses.
package gate

import "net/http"

// Target names for redirect decisions. They are resolved to paths at the
// HTTP edge only.
const (
	TargetSelectAgency      = "select-agency.show"
	TargetSubscriptionRenew = "subscription.renew"
	TargetHome              = "home"
)

// Kind discriminates a Decision.
type Kind int

const (
	KindAllow Kind = iota
	KindRedirect
	KindDeny
)

// Decision is the outcome of one gate: pass, redirect the browser, or deny
// with a response payload. A redirect is a definitive answer for the request,
// never an error.
type Decision struct {
	Kind    Kind
	Target  string
	Code    int
	Payload any
}

func Allow() Decision {
	return Decision{Kind: KindAllow}
}

func Redirect(target string) Decision {
	return Decision{Kind: KindRedirect, Target: target}
}

func Deny(code int, payload any) Decision {
	return Decision{Kind: KindDeny, Code: code, Payload: payload}
}

// Allowed reports whether the request may continue to the next stage.
func (d Decision) Allowed() bool { return d.Kind == KindAllow }

// ErrorPayload is the JSON denial body for role gates.
type ErrorPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func forbidden(message string) Decision {
	return Deny(http.StatusForbidden, ErrorPayload{Status: "error", Message: message})
}
