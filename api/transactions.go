package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/api/apistrings"
	models "github.com/CoinKeep/CoinKeep-Backend/api/models"
	"github.com/CoinKeep/CoinKeep-Backend/db"
	basemodels "github.com/CoinKeep/CoinKeep-Backend/models"
	"github.com/CoinKeep/CoinKeep-Backend/services/transaction"
	"github.com/CoinKeep/CoinKeep-Backend/services/wallet"
	"github.com/CoinKeep/CoinKeep-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Transaction struct {
	server             *Server
	transactionService *transaction.TransactionService
}

func (t Transaction) router(server *Server) {
	t.server = server
	walletService := wallet.NewWalletService(server.store, server.logger)
	t.transactionService = transaction.NewTransactionService(server.store, walletService, server.logger)

	serverGroupV1 := server.router.Group("/api/v1")
	serverGroupV1.POST("wallets/:id/transactions", AuthenticatedMiddleware(), t.createTransaction)
	serverGroupV1.GET("wallets/:id/transactions", AuthenticatedMiddleware(), t.listTransactions)
	serverGroupV1.GET("wallets/:id/transactions/grouped", AuthenticatedMiddleware(), t.getGroupedTransactions)
	serverGroupV1.GET("transactions/:id", AuthenticatedMiddleware(), t.getTransaction)
}

func (t *Transaction) respondWalletError(ctx *gin.Context, err error) {
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WalletNotFound))
	} else if errors.Is(err, wallet.ErrNotYours) {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.WalletNotYours))
	} else {
		t.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}

func (t *Transaction) createTransaction(ctx *gin.Context) {
	walletID, ok := walletIDParam(ctx)
	if !ok {
		return
	}

	var request models.CreateTransactionParams
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	occurredAt, err := request.OccurredAt()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	created, err := t.transactionService.Add(ctx, activeUser.UserID, walletID,
		request.Description, occurredAt, request.Amount, db.TransactionType(request.Type))
	if errors.Is(err, transaction.ErrInvalidType) || errors.Is(err, transaction.ErrInvalidAmount) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	} else if err != nil {
		t.respondWalletError(ctx, err)
		return
	}

	t.server.invalidate(ctx,
		balanceKey(walletID),
		balancesKey(activeUser.UserID),
		summaryKey(walletID, occurredAt.Year(), occurredAt.Month()))

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Transaction Created Successfully",
		models.ToTransactionResponse(&created, t.server.refs)))
}

func (t *Transaction) getTransaction(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	found, err := t.transactionService.Get(ctx, activeUser.UserID, id)
	if errors.Is(err, transaction.ErrTransactionNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.TransactionNotFound))
		return
	} else if err != nil {
		t.respondWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transaction Fetched Successfully",
		models.ToTransactionResponse(&found, t.server.refs)))
}

func (t *Transaction) listTransactions(ctx *gin.Context) {
	walletID, ok := walletIDParam(ctx)
	if !ok {
		return
	}

	var query models.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidFilterInput))
		return
	}

	filter, err := query.Filter()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidFilterInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	page := query.Pagination()
	items, total, err := t.transactionService.List(ctx, activeUser.UserID, walletID, filter, page)
	if err != nil {
		t.respondWalletError(ctx, err)
		return
	}

	response := models.TransactionPageResponse{
		Items:      models.ToTransactionCollectionResponse(items, t.server.refs),
		TotalCount: total,
		Page:       page.Page,
		PageSize:   page.Limit(),
	}
	if response.Page < 1 {
		response.Page = 1
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Transactions Fetched Successfully", response))
}

func (t *Transaction) getGroupedTransactions(ctx *gin.Context) {
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

	items, err := t.transactionService.GroupedByMonth(ctx, activeUser.UserID, walletID,
		period.Year, time.Month(period.Month))
	if err != nil {
		t.respondWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Grouped Transactions Fetched Successfully",
		models.ToTransactionCollectionResponse(items, t.server.refs)))
}
