package routes

import (
	"net/http"

	"github.com/Rakhulsr/vendoz/app/handlers"
	"github.com/Rakhulsr/vendoz/app/middlewares"
	"github.com/Rakhulsr/vendoz/app/models"
	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type Handlers struct {
	Users        *handlers.UserHandler
	Auth         *handlers.AuthHandler
	Products     *handlers.ProductHandler
	Cart         *handlers.CartHandler
	Orders       *handlers.OrderHandler
	Receipts     *handlers.ReceiptHandler
	Dashboard    *handlers.DashboardHandler
	Messages     *handlers.MessageHandler
	Testimonials *handlers.TestimonialHandler
	Payments     *handlers.PaymentHandler
}

type Dependencies struct {
	Render      *render.Render
	Tokens      middlewares.TokenVerifier
	Logger      *zap.Logger
	UploadDir   string
	CORSOrigins []string
	Handlers    Handlers
}

type accessKind int

const (
	public accessKind = iota
	optional
	authenticated
	capability
	ownerOr
)

// access describes who may call a route. For ownerOr, cap is required of everyone and
// the path variable owner must name the caller unless they also hold admin.
type access struct {
	kind  accessKind
	cap   middlewares.Capability
	owner string
	admin middlewares.Capability
}

var (
	open     = access{kind: public}
	identify = access{kind: optional}
	signedIn = access{kind: authenticated}
)

func can(c middlewares.Capability) access {
	return access{kind: capability, cap: c}
}

func self(param string, c, admin middlewares.Capability) access {
	return access{kind: ownerOr, cap: c, owner: param, admin: admin}
}

type route struct {
	method  string
	path    string
	handler http.HandlerFunc
	access  access
}

// table lists every API route with its access rule. Literal paths come before the
// {id} patterns they would otherwise be captured by.
func table(h Handlers) []route {
	return []route{
		{http.MethodPost, "/api/signup", h.Users.Signup, identify},
		{http.MethodGet, "/api/signup", h.Users.List, can(middlewares.ManageUsers)},
		{http.MethodGet, "/api/signup/{id}", h.Users.Get, self("id", middlewares.ViewOwnAccount, middlewares.ManageUsers)},
		{http.MethodPut, "/api/signup/{id}", h.Users.Update, self("id", middlewares.ViewOwnAccount, middlewares.ManageUsers)},
		{http.MethodDelete, "/api/signup/{id}", h.Users.Delete, can(middlewares.ManageUsers)},

		{http.MethodPost, "/api/login", h.Auth.Login, open},
		{http.MethodGet, "/api/login/me", h.Auth.Me, signedIn},

		{http.MethodGet, "/api/products", h.Products.List, open},
		{http.MethodGet, "/api/products/{id}", h.Products.Get, open},
		{http.MethodPost, "/api/products", h.Products.Create, can(middlewares.ManageCatalog)},
		{http.MethodPut, "/api/products/{id}", h.Products.Update, can(middlewares.ManageCatalog)},
		{http.MethodDelete, "/api/products/{id}", h.Products.Delete, can(middlewares.ManageCatalog)},

		{http.MethodGet, "/api/cart/{userId}", h.Cart.Get, self("userId", middlewares.ManageOwnCart, middlewares.ManageUsers)},
		{http.MethodPost, "/api/cart/{userId}", h.Cart.Add, self("userId", middlewares.ManageOwnCart, middlewares.ManageUsers)},
		{http.MethodDelete, "/api/cart/{userId}/{productId}", h.Cart.Remove, self("userId", middlewares.ManageOwnCart, middlewares.ManageUsers)},

		{http.MethodPost, "/api/orders", h.Orders.Create, can(middlewares.PlaceOrder)},
		{http.MethodGet, "/api/orders", h.Orders.List, can(middlewares.ManageOrders)},
		{http.MethodGet, "/api/orders/mine", h.Orders.Mine, signedIn},
		{http.MethodGet, "/api/orders/test-email", h.Orders.TestEmail, can(middlewares.ManageOrders)},
		{http.MethodGet, "/api/orders/{id}", h.Orders.Get, signedIn},
		{http.MethodPut, "/api/orders/{id}/status", h.Orders.UpdateStatus, can(middlewares.ManageOrders)},

		{http.MethodGet, "/api/pdf/receipt/{id}", h.Receipts.Download, can(middlewares.ViewOwnReceipts)},

		{http.MethodGet, "/api/dashboard", h.Dashboard.Metrics, can(middlewares.ViewDashboard)},
		{http.MethodGet, "/api/dashboard/recent-orders", h.Dashboard.RecentOrders, can(middlewares.ViewDashboard)},
		{http.MethodGet, "/api/dashboard/low-stock", h.Dashboard.LowStock, can(middlewares.ViewDashboard)},
		{http.MethodGet, "/api/dashboard/profit", h.Dashboard.Profit, can(middlewares.ViewDashboard)},
		{http.MethodGet, "/api/dashboard/quick-stats", h.Dashboard.QuickStats, can(middlewares.ViewDashboard)},
		{http.MethodGet, "/api/dashboard/sales-trends", h.Dashboard.SalesTrends, can(middlewares.ViewDashboard)},

		{http.MethodPost, "/api/messages", h.Messages.Create, open},
		{http.MethodGet, "/api/messages", h.Messages.List, can(middlewares.ManageMessages)},
		{http.MethodPost, "/api/messages/reply", h.Messages.Reply, can(middlewares.ManageMessages)},
		{http.MethodDelete, "/api/messages/{id}", h.Messages.Delete, can(middlewares.ManageMessages)},

		{http.MethodGet, "/api/testimonials", h.Testimonials.List, open},
		{http.MethodPost, "/api/testimonials", h.Testimonials.Create, can(middlewares.ManageTestimonials)},
		{http.MethodPut, "/api/testimonials/{id}", h.Testimonials.Update, can(middlewares.ManageTestimonials)},
		{http.MethodDelete, "/api/testimonials/{id}", h.Testimonials.Delete, can(middlewares.ManageTestimonials)},

		{http.MethodPost, "/create-payment-intent", h.Payments.CreateIntent, can(middlewares.CreatePayment)},
	}
}

func guard(deps Dependencies, a access, next http.Handler) http.Handler {
	switch a.kind {
	case public:
		return next
	case optional:
		return middlewares.OptionalAuth(deps.Tokens)(next)
	case authenticated:
		return middlewares.RequireAuth(deps.Tokens, deps.Render)(next)
	case capability:
		return middlewares.RequireAuth(deps.Tokens, deps.Render)(
			middlewares.Require(a.cap, deps.Render)(next))
	case ownerOr:
		return middlewares.RequireAuth(deps.Tokens, deps.Render)(
			middlewares.Require(a.cap, deps.Render)(
				middlewares.OwnerOr(a.owner, a.admin, deps.Render)(next)))
	}
	panic("routes: unknown access kind")
}

// NewRouter builds the mux with every route guarded by its access rule.
func NewRouter(deps Dependencies) *mux.Router {
	router := mux.NewRouter()

	for _, rt := range table(deps.Handlers) {
		router.Handle(rt.path, guard(deps, rt.access, rt.handler)).Methods(rt.method)
	}

	router.PathPrefix(models.UploadURLPrefix).Handler(
		http.StripPrefix(models.UploadURLPrefix, http.FileServer(http.Dir(deps.UploadDir)))).Methods(http.MethodGet)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		deps.Render.Text(w, http.StatusOK, "API is running")
	}).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps.Render.JSON(w, http.StatusNotFound, map[string]string{"message": "Route not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps.Render.JSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
	})

	return router
}

// Wrap adds CORS, panic recovery and request logging around the router.
func Wrap(deps Dependencies, router http.Handler) http.Handler {
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins(origins),
		ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		ghandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	recovery := ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(middlewares.RecoveryLogger{Logger: deps.Logger.Sugar()}),
		ghandlers.PrintRecoveryStack(true),
	)

	return middlewares.RequestLogger(deps.Logger)(cors(recovery(router)))
}
