package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/api/apistrings"
	models "github.com/CoinKeep/CoinKeep-Backend/api/models"
	basemodels "github.com/CoinKeep/CoinKeep-Backend/models"
	"github.com/CoinKeep/CoinKeep-Backend/services/report"
	"github.com/CoinKeep/CoinKeep-Backend/services/wallet"
	"github.com/CoinKeep/CoinKeep-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Wallet struct {
	server        *Server
	walletService *wallet.WalletService
	reportService *report.ReportService
}

func (w Wallet) router(server *Server) {
	w.server = server
	w.walletService = wallet.NewWalletService(server.store, server.logger)
	w.reportService = report.NewReportService(server.store, server.logger)

	serverGroupV1 := server.router.Group("/api/v1/wallets")
	serverGroupV1.POST("", AuthenticatedMiddleware(), w.createWallet)
	serverGroupV1.GET("", AuthenticatedMiddleware(), w.getUserWallets)
	serverGroupV1.GET("balances", AuthenticatedMiddleware(), w.getAllBalances)
	serverGroupV1.GET("top-expenses", AuthenticatedMiddleware(), w.getTopExpenses)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), w.getWallet)
	serverGroupV1.DELETE(":id", AuthenticatedMiddleware(), w.deleteWallet)
	serverGroupV1.GET(":id/balance", AuthenticatedMiddleware(), w.getBalance)
	serverGroupV1.GET(":id/summary", AuthenticatedMiddleware(), w.getMonthlySummary)
}

func walletIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return 0, false
	}
	return id, true
}

func (w *Wallet) createWallet(ctx *gin.Context) {
	var request models.CreateWalletParams
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	created, err := w.walletService.CreateWallet(ctx, activeUser.UserID, request.Name, request.Currency, request.InitialBalance)
	if errors.Is(err, wallet.ErrWalletNotPossible) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	w.server.invalidate(ctx, balancesKey(activeUser.UserID))
	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("User Wallet Created Successfully", models.ToWalletResponse(&created)))
}

func (w *Wallet) getUserWallets(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	wallets, err := w.walletService.ListWithBalances(ctx, activeUser.UserID)
	if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("User Wallets Fetched Successfully", models.ToWalletBalanceCollectionResponse(wallets)))
}

func (w *Wallet) getWallet(ctx *gin.Context) {
	walletID, ok := walletIDParam(ctx)
	if !ok {
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	found, err := w.walletService.GetOwnedWallet(ctx, activeUser.UserID, walletID)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WalletNotFound))
		return
	} else if errors.Is(err, wallet.ErrNotYours) {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.WalletNotYours))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("User Wallet Fetched Successfully", models.ToWalletResponse(&found)))
}

func (w *Wallet) deleteWallet(ctx *gin.Context) {
	walletID, ok := walletIDParam(ctx)
	if !ok {
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	err = w.walletService.DeleteWallet(ctx, activeUser.UserID, walletID)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WalletNotFound))
		return
	} else if errors.Is(err, wallet.ErrNotYours) {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.WalletNotYours))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	w.server.invalidate(ctx, balanceKey(walletID), balancesKey(activeUser.UserID))
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("User Wallet Deleted Successfully", nil))
}

func (w *Wallet) getBalance(ctx *gin.Context) {
	walletID, ok := walletIDParam(ctx)
	if !ok {
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	owned, err := w.walletService.GetOwnedWallet(ctx, activeUser.UserID, walletID)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WalletNotFound))
		return
	} else if errors.Is(err, wallet.ErrNotYours) {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.WalletNotYours))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	if w.server.serveCached(ctx, balanceKey(walletID)) {
		return
	}

	balance, err := w.walletService.CurrentBalance(ctx, walletID)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WalletNotFound))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	response := models.ToWalletBalanceResponse(&wallet.WalletWithBalance{Wallet: owned, Balance: balance})
	w.server.respondAndCache(ctx, balanceKey(walletID),
		basemodels.NewSuccess("Wallet Balance Fetched Successfully", response))
}

func (w *Wallet) getAllBalances(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	if w.server.serveCached(ctx, balancesKey(activeUser.UserID)) {
		return
	}

	wallets, err := w.walletService.ListWithBalances(ctx, activeUser.UserID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	w.server.respondAndCache(ctx, balancesKey(activeUser.UserID),
		basemodels.NewSuccess("Wallet Balances Fetched Successfully", models.ToWalletBalanceCollectionResponse(wallets)))
}

func (w *Wallet) getMonthlySummary(ctx *gin.Context) {
	walletID, ok := walletIDParam(ctx)
	if !ok {
		return
	}

	var period models.PeriodQuery
	if err := ctx.ShouldBindQuery(&period); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidPeriodInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	if _, err := w.walletService.GetOwnedWallet(ctx, activeUser.UserID, walletID); err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WalletNotFound))
			return
		} else if errors.Is(err, wallet.ErrNotYours) {
			ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.WalletNotYours))
			return
		}
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	key := summaryKey(walletID, period.Year, time.Month(period.Month))
	if w.server.serveCached(ctx, key) {
		return
	}

	summary, err := w.reportService.MonthlySummary(ctx, walletID, period.Year, time.Month(period.Month))
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WalletNotFound))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	w.server.respondAndCache(ctx, key,
		basemodels.NewSuccess("Monthly Summary Fetched Successfully", models.ToMonthlySummaryResponse(&summary)))
}

func (w *Wallet) getTopExpenses(ctx *gin.Context) {
	var period models.PeriodQuery
	if err := ctx.ShouldBindQuery(&period); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidPeriodInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	views, err := w.reportService.AssembleTopExpenses(ctx, activeUser.UserID, period.Year, time.Month(period.Month))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Top Expenses Fetched Successfully",
		models.ToWalletTopExpensesCollectionResponse(views, w.server.refs)))
}
