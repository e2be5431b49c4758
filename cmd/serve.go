package cmd

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/seucantinho/ms-go-reservations/app/controller"
	"github.com/seucantinho/ms-go-reservations/app/gateway"
	"github.com/seucantinho/ms-go-reservations/app/repository"
	"github.com/seucantinho/ms-go-reservations/app/service"
	"github.com/seucantinho/ms-go-reservations/app/types"
	"github.com/seucantinho/ms-go-reservations/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP (Echo) server for the reservations service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type services struct {
	reservations *service.ReservationService
	payments     *service.PaymentService
	spaces       *service.SpaceService
	clients      *service.ClientService
	branches     *service.BranchService
	events       *repository.ReservationEventRepository
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, svcs, cleanup := mustCreateServices()
	defer cleanup()

	e := setupHTTPServer(svcs)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(svcs *services) *echo.Echo {
	reservationController := controller.NewReservationController(svcs.reservations)
	paymentController := controller.NewPaymentController(svcs.payments)
	spaceController := controller.NewSpaceController(svcs.spaces)
	clientController := controller.NewClientController(svcs.clients)
	branchController := controller.NewBranchController(svcs.branches)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(requireRequestID())

	e.GET("/health", reservationController.Health)

	reservations := e.Group("/reservations")
	reservations.POST("", reservationController.CreateReservation)
	reservations.GET("", reservationController.ListReservations)
	reservations.GET("/:id", reservationController.GetReservation)
	reservations.POST("/:id/cancel", reservationController.CancelReservation)
	reservations.POST("/:id/payments", paymentController.ProcessPayment)
	reservations.GET("/:id/payments", paymentController.ListReservationPayments)

	e.GET("/payments/:id", paymentController.GetPayment)

	spaces := e.Group("/spaces")
	spaces.POST("", spaceController.CreateSpace)
	spaces.GET("", spaceController.ListSpaces)
	spaces.GET("/:id", spaceController.GetSpace)
	spaces.PUT("/:id", spaceController.UpdateSpace)
	spaces.DELETE("/:id", spaceController.DeleteSpace)
	spaces.GET("/:id/availability", reservationController.CheckAvailability)

	clients := e.Group("/clients")
	clients.POST("", clientController.CreateClient)
	clients.GET("", clientController.ListClients)
	clients.GET("/:id", clientController.GetClient)
	clients.PUT("/:id", clientController.UpdateClient)
	clients.DELETE("/:id", clientController.DeactivateClient)

	branches := e.Group("/branches")
	branches.POST("", branchController.CreateBranch)
	branches.GET("", branchController.ListBranches)
	branches.GET("/:id", branchController.GetBranch)
	branches.PUT("/:id", branchController.UpdateBranch)
	branches.DELETE("/:id", branchController.DeactivateBranch)

	return e
}

func requireRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			requestID := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
			if requestID == "" {
				return ctx.JSON(http.StatusBadRequest, &types.ErrorResponse{Error: "x-request-id header is required"})
			}
			ctx.Response().Header().Set(echo.HeaderXRequestID, requestID)
			return next(ctx)
		}
	}
}

func mustCreateServices() (*config.Config, *services, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	store := repository.NewStore(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	eventRepo := repository.NewReservationEventRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	clientRepo := repository.NewClientRepository(db)
	branchRepo := repository.NewBranchRepository(db)

	gatewayRegistry := gateway.NewRegistry(
		gateway.NewCardGateway(),
		gateway.NewPixGateway(),
	)

	reservationService := service.NewReservationService(store, reservationRepo, spaceRepo, clientRepo, cfg.Booking)
	paymentService := service.NewPaymentService(store, paymentRepo, reservationService, gatewayRegistry, cfg.Booking)
	spaceService := service.NewSpaceService(spaceRepo, branchRepo, reservationRepo, reservationService)
	clientService := service.NewClientService(clientRepo)
	branchService := service.NewBranchService(branchRepo)

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, &services{
		reservations: reservationService,
		payments:     paymentService,
		spaces:       spaceService,
		clients:      clientService,
		branches:     branchService,
		events:       eventRepo,
	}, cleanup
}

func configureLogging(cfg *config.Config) error {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}
