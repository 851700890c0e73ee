package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/account"
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/budget"
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/category"
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/goal"
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/recurring"
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/status"
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/user"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    int
	Service *service.Service
}

type registrar interface {
	Register(api huma.API)
}

// Handler builds the router with every v1 endpoint mounted.
func (r *Rest) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.Middleware(r.Logger))
	router.Use(middleware.Recoverer)

	statusHandler := status.NewHandler()
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humachi.New(router, huma.DefaultConfig("Bookkeeping Server", "1.0.0"))

	svc := r.Service
	handlers := []registrar{
		user.NewCreateUserHandler(svc.User),
		user.NewReadUserHandler(svc.User),
		user.NewUpdateUserHandler(svc.User),
		user.NewDeleteUserHandler(svc.User),

		account.NewCreateAccountHandler(svc.Account),
		account.NewGetAccountHandler(svc.Account),
		account.NewGetBalanceHandler(svc.Account),
		account.NewListAccountsHandler(svc.Account),
		account.NewUpdateAccountHandler(svc.Account),
		account.NewDeleteAccountHandler(svc.Account),

		category.NewCreateCategoryHandler(svc.Category),
		category.NewReadCategoryHandler(svc.Category),
		category.NewUpdateCategoryHandler(svc.Category),
		category.NewDeleteCategoryHandler(svc.Category),

		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewGetTransactionHandler(svc.Transaction),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewUpdateTransactionHandler(svc.Transaction),
		transaction.NewDeleteTransactionHandler(svc.Transaction),

		recurring.NewCreateRecurringHandler(svc.RecurringTransaction),
		recurring.NewReadRecurringHandler(svc.RecurringTransaction),
		recurring.NewUpdateRecurringHandler(svc.RecurringTransaction),
		recurring.NewDeleteRecurringHandler(svc.RecurringTransaction),

		budget.NewCreateBudgetHandler(svc.Budget),
		budget.NewReadBudgetHandler(svc.Budget),
		budget.NewUpdateBudgetHandler(svc.Budget),
		budget.NewDeleteBudgetHandler(svc.Budget),

		goal.NewCreateGoalHandler(svc.Goal),
		goal.NewReadGoalHandler(svc.Goal),
		goal.NewUpdateGoalHandler(svc.Goal),
		goal.NewUpdateGoalProgressHandler(svc.Goal),
		goal.NewDeleteGoalHandler(svc.Goal),
	}
	for _, h := range handlers {
		h.Register(humaAPI)
	}

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + strconv.Itoa(r.Port),
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
