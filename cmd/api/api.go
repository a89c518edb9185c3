package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/zaikahq/zaika/docs"
	"github.com/zaikahq/zaika/internal/auth"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/queue"
	"github.com/zaikahq/zaika/internal/ratelimiter"
	"github.com/zaikahq/zaika/internal/repo"
	"github.com/zaikahq/zaika/internal/service"
	"github.com/zaikahq/zaika/internal/store/mongo"
	"github.com/zaikahq/zaika/internal/worker"
	"github.com/zaikahq/zaika/internal/ws"
	"go.uber.org/zap"
)

type application struct {
	config        config
	logger        *zap.SugaredLogger
	rateLimiter   ratelimiter.Limiter
	storage       *mongo.Storage
	broker        queue.Broker
	authenticator *auth.Authenticator
	hub           *ws.Hub

	categoryRepo repo.CategoryRepository
	menuItemRepo repo.MenuItemRepository
	branchRepo   repo.BranchRepository
	riderRepo    repo.RiderRepository
	refundRepo   repo.RefundRepository
	expenseRepo  repo.ExpenseRepository
	supplierRepo repo.SupplierRepository
	staffRepo    repo.StaffRepository
	shiftRepo    repo.ShiftRepository
	campaignRepo repo.CampaignRepository

	orderService    *service.OrderService
	deliveryService *service.DeliveryService
	posService      *service.PosService
	campaignService *service.CampaignService
	reportService   *service.ReportService
	auditService    *service.AuditService

	auditWorker    *worker.StatusAuditWorker
	campaignWorker *worker.CampaignDispatchWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	auth        authConfig
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
}

type authConfig struct {
	secret string
	issuer string
	expiry time.Duration
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Post("/auth/login", app.loginHandler)

		r.Get("/ws", app.hub.ServeHTTP)

		// storefront, no auth
		r.Get("/catalog/categories", app.listCategoriesHandler)
		r.Get("/catalog/items", app.listMenuItemsHandler)
		r.Get("/catalog/items/{item_id}", app.getMenuItemHandler)
		r.Get("/branches", app.listBranchesHandler)
		r.Get("/branches/nearest", app.nearestBranchHandler)
		r.Post("/orders", app.createOrderHandler)
		r.Get("/orders/{order_id}", app.getOrderHandler)
		r.Get("/orders/{order_id}/timeline", app.orderTimelineHandler)

		// staff surface
		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Get("/orders", app.listOrdersHandler)
			r.Patch("/orders/{order_id}/status", app.updateOrderStatusHandler)
			r.Post("/orders/{order_id}/cancel", app.cancelOrderHandler)

			r.With(app.requireRole(domain.RoleKitchen, domain.RoleCashier, domain.RoleManager)).
				Get("/kitchen/orders", app.kitchenOrdersHandler)

			r.Route("/deliveries", func(r chi.Router) {
				r.Get("/", app.listDeliveriesHandler)
				r.Get("/{delivery_id}", app.getDeliveryHandler)
				r.With(app.requireRole(domain.RoleManager)).
					Post("/{delivery_id}/assign", app.assignRiderHandler)
				r.With(app.requireRole(domain.RoleRider, domain.RoleManager)).
					Patch("/{delivery_id}/status", app.updateDeliveryStatusHandler)
			})

			r.Route("/riders", func(r chi.Router) {
				r.Get("/", app.listRidersHandler)
				r.With(app.requireRole(domain.RoleManager)).Post("/", app.createRiderHandler)
				r.With(app.requireRole(domain.RoleRider)).
					Get("/my-deliveries", app.myDeliveriesHandler)
				r.Get("/{rider_id}/stats", app.riderStatsHandler)
				r.With(app.requireRole(domain.RoleRider, domain.RoleManager)).
					Patch("/{rider_id}/presence", app.updateRiderPresenceHandler)
			})

			r.Route("/pos/sessions", func(r chi.Router) {
				r.Use(app.requireRole(domain.RoleCashier, domain.RoleManager))

				r.Post("/", app.openSessionHandler)
				r.Get("/", app.listSessionsHandler)
				r.Get("/active", app.activeSessionHandler)
				r.Post("/{session_id}/close", app.closeSessionHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(app.requireRole(domain.RoleManager))

				r.Post("/catalog/categories", app.createCategoryHandler)
				r.Patch("/catalog/categories/{category_id}", app.updateCategoryHandler)
				r.Delete("/catalog/categories/{category_id}", app.deleteCategoryHandler)
				r.Post("/catalog/items", app.createMenuItemHandler)
				r.Patch("/catalog/items/{item_id}", app.updateMenuItemHandler)
				r.Patch("/catalog/items/{item_id}/availability", app.setMenuItemAvailabilityHandler)
				r.Delete("/catalog/items/{item_id}", app.deleteMenuItemHandler)

				r.Post("/refunds", app.createRefundHandler)
				r.Get("/refunds", app.listRefundsHandler)
				r.Post("/refunds/{refund_id}/approve", app.approveRefundHandler)
				r.Post("/refunds/{refund_id}/reject", app.rejectRefundHandler)

				r.Post("/expenses", app.createExpenseHandler)
				r.Get("/expenses", app.listExpensesHandler)
				r.Patch("/expenses/{expense_id}", app.updateExpenseHandler)
				r.Delete("/expenses/{expense_id}", app.deleteExpenseHandler)

				r.Post("/suppliers", app.createSupplierHandler)
				r.Get("/suppliers", app.listSuppliersHandler)
				r.Patch("/suppliers/{supplier_id}", app.updateSupplierHandler)
				r.Delete("/suppliers/{supplier_id}", app.deleteSupplierHandler)

				r.Get("/reports/sales", app.salesReportHandler)
				r.Get("/reports/sales/export", app.exportSalesReportHandler)
				r.Get("/reports/shifts/{session_id}", app.shiftReportHandler)
				r.Get("/shifts", app.listShiftsHandler)

				r.Post("/marketing-campaigns", app.createCampaignHandler)
				r.Get("/marketing-campaigns", app.listCampaignsHandler)
				r.Get("/marketing-campaigns/{campaign_id}", app.getCampaignHandler)
				r.Delete("/marketing-campaigns/{campaign_id}", app.deleteCampaignHandler)
				r.Get("/marketing-campaigns/preview", app.previewAudienceHandler)
				r.Post("/marketing-campaigns/{campaign_id}/schedule", app.scheduleCampaignHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(app.requireRole(domain.RoleAdmin))

				r.Post("/branches", app.createBranchHandler)
				r.Patch("/branches/{branch_id}", app.updateBranchHandler)
				r.Delete("/branches/{branch_id}", app.deleteBranchHandler)

				r.Post("/staff", app.createStaffHandler)
				r.Get("/staff", app.listStaffHandler)
				r.Patch("/staff/{staff_id}", app.updateStaffHandler)
			})

			r.Post("/shifts/clock-in", app.clockInHandler)
			r.Post("/shifts/clock-out", app.clockOutHandler)
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Zaika"
	docs.SwaggerInfo.Description = "API for the Zaika restaurant platform"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.auditWorker != nil {
		if err := app.auditWorker.Start(); err != nil {
			return fmt.Errorf("failed to start audit worker: %w", err)
		}
	}
	if app.campaignWorker != nil {
		if err := app.campaignWorker.Start(); err != nil {
			return fmt.Errorf("failed to start campaign worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.auditWorker != nil {
			app.auditWorker.Stop()
		}
		if app.campaignWorker != nil {
			app.campaignWorker.Stop()
		}

		if app.hub != nil {
			app.hub.Close()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
