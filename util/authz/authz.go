// Package authz is the single capability check consulted by every
// state-machine transition. Ownership and staff rules live here instead of
// inline conditionals scattered across services.
package authz

type Principal struct {
	ID    int64
	Staff bool
}

type Action string

const (
	ViewRequests        Action = "rentrequest:list"
	DecideRequest       Action = "rentrequest:decide"
	CancelRequest       Action = "rentrequest:cancel"
	ModerateAdvert      Action = "advertisement:moderate"
	ManageOwnAdvert     Action = "advertisement:manage"
	CancelOrder         Action = "order:cancel"
	RemoveFavourite     Action = "favourite:remove"
	InitiateOrderPaying Action = "order:pay"
)

// Allowed reports whether p may perform a on a resource owned by ownerID.
// Staff override applies everywhere except order mutation: an order belongs
// to the paying renter alone.
func Allowed(p Principal, ownerID int64, a Action) bool {
	switch a {
	case ModerateAdvert:
		return p.Staff
	case CancelOrder, InitiateOrderPaying, CancelRequest, RemoveFavourite:
		return p.ID == ownerID
	default:
		return p.Staff || p.ID == ownerID
	}
}
