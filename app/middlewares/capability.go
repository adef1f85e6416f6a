package middlewares

import (
	"net/http"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type Capability string

const (
	PlaceOrder         Capability = "place_order"
	ManageOwnCart      Capability = "manage_own_cart"
	ViewOwnAccount     Capability = "view_own_account"
	CreatePayment      Capability = "create_payment"
	ViewOwnReceipts    Capability = "view_own_receipts"
	ManageCatalog      Capability = "manage_catalog"
	ManageOrders       Capability = "manage_orders"
	ManageUsers        Capability = "manage_users"
	ManageMessages     Capability = "manage_messages"
	ManageTestimonials Capability = "manage_testimonials"
	ViewDashboard      Capability = "view_dashboard"
)

var customerCapabilities = []Capability{
	PlaceOrder, ManageOwnCart, ViewOwnAccount, CreatePayment, ViewOwnReceipts,
}

var adminCapabilities = append(append([]Capability{}, customerCapabilities...),
	ManageCatalog, ManageOrders, ManageUsers, ManageMessages, ManageTestimonials, ViewDashboard,
)

var roleCapabilities = map[string]map[Capability]struct{}{
	models.RoleCustomer: capabilitySet(customerCapabilities),
	models.RoleAdmin:    capabilitySet(adminCapabilities),
}

func capabilitySet(caps []Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

func HasCapability(role string, c Capability) bool {
	_, ok := roleCapabilities[role][c]
	return ok
}

// Require lets the request through only when the caller's role grants c.
func Require(c Capability, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok || !HasCapability(identity.Role, c) {
				rnd.JSON(w, http.StatusForbidden, map[string]string{"message": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OwnerOr passes when the path variable param names the caller, or when the caller holds c.
func OwnerOr(param string, c Capability, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				rnd.JSON(w, http.StatusForbidden, map[string]string{"message": "Forbidden"})
				return
			}
			if owner := mux.Vars(r)[param]; owner != identity.UserID && !HasCapability(identity.Role, c) {
				rnd.JSON(w, http.StatusForbidden, map[string]string{"message": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
