package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Rakhulsr/vendoz/app/configs"
	"github.com/Rakhulsr/vendoz/app/handlers"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/Rakhulsr/vendoz/app/routes"
	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/Rakhulsr/vendoz/app/utils/renderer"
	"github.com/Rakhulsr/vendoz/app/utils/uploads"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const storeName = "Vendoz"

// Overrides swaps outbound integrations, mostly for tests. Nil fields use the real ones.
type Overrides struct {
	Mailer  services.MailSender
	Gateway services.PaymentGateway
}

type App struct {
	env     configs.ENV
	db      *gorm.DB
	logger  *zap.Logger
	handler http.Handler
	users   *services.UserService
}

func location(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load APP_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// New wires repositories, services and handlers over db.
func New(env configs.ENV, db *gorm.DB, logger *zap.Logger, ov Overrides) (*App, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	loc, err := location(env.AppTimezone)
	if err != nil {
		return nil, err
	}

	storage, err := uploads.NewStorage(env.UploadDir)
	if err != nil {
		return nil, err
	}

	mailer := ov.Mailer
	if mailer == nil {
		smtp := services.NewMailer(services.Config{
			Host:     env.SMTPHost,
			Port:     env.SMTPPort,
			Username: env.SMTPUser,
			Password: env.SMTPPass,
			From:     env.FromEmail,
			FromName: storeName,
			SSL:      env.SMTPSecure,
		})
		if err := smtp.Verify(); err != nil {
			logger.Warn("SMTP is not ready, emails will fail", zap.Error(err))
		}
		mailer = smtp
	}

	gateway := ov.Gateway
	if gateway == nil {
		gateway = services.NewMidtransGateway(configs.NewMidtransSnapClient(env), env.AppURL)
	}

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	tokens := services.NewTokenService(env.JWTSecret, env.JWTTTL)
	users := services.NewUserService(userRepo, tokens)
	products := services.NewProductService(productRepo)
	testimonials := services.NewTestimonialService(repositories.NewTestimonialRepository(db))
	carts := services.NewCartService(repositories.NewCartRepository(db), repositories.NewCartItemRepository(db), productRepo)
	orders := services.NewOrderService(db, orderRepo, repositories.NewOrderItemRepository(db), productRepo, userRepo, mailer, env.FromEmail)
	messages := services.NewMessageService(db, repositories.NewMessageRepository(db), mailer)
	dashboard := services.NewDashboardService(repositories.NewDashboardRepository(db), orderRepo, loc)
	receipts := services.NewReceiptService(storeName, loc)
	payments := services.NewPaymentService(gateway, userRepo)

	rnd := renderer.New(env.IsDevelopment())
	base := handlers.NewBase(rnd, env.IsDevelopment())

	deps := routes.Dependencies{
		Render:      rnd,
		Tokens:      tokens,
		Logger:      logger,
		UploadDir:   storage.Dir(),
		CORSOrigins: env.CORSOrigins,
		Handlers: routes.Handlers{
			Users:        handlers.NewUserHandler(base, users),
			Auth:         handlers.NewAuthHandler(base, users),
			Products:     handlers.NewProductHandler(base, products, storage),
			Cart:         handlers.NewCartHandler(base, carts),
			Orders:       handlers.NewOrderHandler(base, orders, carts),
			Receipts:     handlers.NewReceiptHandler(base, orders, receipts),
			Dashboard:    handlers.NewDashboardHandler(base, dashboard),
			Messages:     handlers.NewMessageHandler(base, messages),
			Testimonials: handlers.NewTestimonialHandler(base, testimonials, storage),
			Payments:     handlers.NewPaymentHandler(base, payments),
		},
	}

	return &App{
		env:     env,
		db:      db,
		logger:  logger,
		handler: routes.Wrap(deps, routes.NewRouter(deps)),
		users:   users,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Users() *services.UserService {
	return a.users
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.env.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", a.env.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down", zap.Duration("timeout", a.env.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.env.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() error {
	return configs.CloseConnection(a.db)
}
