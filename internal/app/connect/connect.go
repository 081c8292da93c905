// Package connect decides what happens when a user presses Connect on
// another user's card.
package connect

import (
	"strings"

	"go.uber.org/zap"
)

// Outcome is the result of pressing Connect.
type Outcome string

const (
	// ExistingIncoming: the other user already sent the viewer a request.
	ExistingIncoming Outcome = "existing_incoming"
	// ExistingOutgoing: the viewer already sent the other user a request.
	ExistingOutgoing Outcome = "existing_outgoing"
	// NoSeats: the viewer is a driver with no free seats.
	NoSeats Outcome = "no_seats"
	// Allowed: the connect dialog may open and a request may be sent.
	Allowed Outcome = "allowed"
)

// EventConnectClicked is the tracking event name logged for every decision.
const EventConnectClicked = "Connect Button Clicked"

const roleDriver = "DRIVER"

// Viewer is the signed-in user pressing Connect.
type Viewer struct {
	ID        string
	Role      string
	SeatAvail int
}

// Other is the user whose card was pressed, with the request state
// relative to the viewer.
type Other struct {
	ID                 string
	PreferredName      string
	HasIncomingRequest bool
	HasOutgoingRequest bool
}

// Decision is an Outcome plus the informational message to show. Message
// is empty when the outcome is Allowed.
type Decision struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message,omitempty"`
}

// Allowed reports whether a new request may be sent.
func (d Decision) Allowed() bool { return d.Outcome == Allowed }

// Decide applies the checks in order: an incoming request wins over an
// outgoing one, and both win over seat availability.
func Decide(v Viewer, o Other) Decision {
	name := o.PreferredName
	switch {
	case o.HasIncomingRequest:
		return Decision{
			Outcome: ExistingIncoming,
			Message: "You already have an incoming carpool request from " + name +
				". Navigate to the received requests tab to connect with them!",
		}
	case o.HasOutgoingRequest:
		return Decision{
			Outcome: ExistingOutgoing,
			Message: "You already have an outgoing carpool request to " + name +
				". Please wait for them to respond to your request!",
		}
	case strings.EqualFold(v.Role, roleDriver) && v.SeatAvail == 0:
		return Decision{
			Outcome: NoSeats,
			Message: "You do not have any seats available in your car to connect with " + name + ".",
		}
	default:
		return Decision{Outcome: Allowed}
	}
}

// DecideAndTrack is Decide plus the tracking event.
func DecideAndTrack(log *zap.Logger, v Viewer, o Other) Decision {
	d := Decide(v, o)
	if log != nil {
		log.Info("tracking event",
			zap.String("event", EventConnectClicked),
			zap.String("userRole", v.Role),
			zap.Bool("hasIncomingRequest", o.HasIncomingRequest),
			zap.Bool("hasOutgoingRequest", o.HasOutgoingRequest),
			zap.String("outcome", string(d.Outcome)))
	}
	return d
}
