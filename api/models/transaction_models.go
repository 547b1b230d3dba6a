package models

import (
	"fmt"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/utils"
)

const dateLayout = "2006-01-02"

type CreateTransactionParams struct {
	Description string `json:"description" binding:"required,max=200"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Type        string `json:"type" binding:"required,oneof=income expense"`
	Date        string `json:"date" binding:"required"`
}

// OccurredAt parses the submitted calendar date as midnight UTC.
func (p *CreateTransactionParams) OccurredAt() (time.Time, error) {
	t, err := time.Parse(dateLayout, p.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return t, nil
}

// ListTransactionsQuery carries the optional filter predicates plus
// pagination for wallet transaction listings.
type ListTransactionsQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Type        string `form:"type" binding:"omitempty,oneof=income expense"`
	Description string `form:"description"`
	MinAmount   *int64 `form:"min_amount" binding:"omitempty,gt=0"`
	MaxAmount   *int64 `form:"max_amount" binding:"omitempty,gt=0"`
	From        string `form:"from"`
	To          string `form:"to"`
}

func (q *ListTransactionsQuery) Filter() (db.TransactionFilter, error) {
	var filter db.TransactionFilter
	if q.Type != "" {
		txType := db.TransactionType(q.Type)
		filter.Type = &txType
	}
	if q.Description != "" {
		filter.DescriptionContains = &q.Description
	}
	filter.MinAmount = q.MinAmount
	filter.MaxAmount = q.MaxAmount
	if q.From != "" {
		from, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return db.TransactionFilter{}, fmt.Errorf("invalid 'from' date: %w", err)
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return db.TransactionFilter{}, fmt.Errorf("invalid 'to' date: %w", err)
		}
		filter.To = &to
	}
	return filter, nil
}

func (q *ListTransactionsQuery) Pagination() db.Pagination {
	return db.Pagination{Page: q.Page, PageSize: q.PageSize}
}

type TransactionResponse struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	WalletID      int64     `json:"wallet_id"`
	Description   string    `json:"description"`
	Amount        int64     `json:"amount"`
	DisplayAmount string    `json:"display_amount"`
	Type          string    `json:"type"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}

type TransactionPageResponse struct {
	Items      []TransactionResponse `json:"items"`
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
}

func ToTransactionResponse(t *db.Transaction, refs *utils.ReferenceCodec) *TransactionResponse {
	reference := ""
	if refs != nil {
		if code, err := refs.Encode(t.ID); err == nil {
			reference = code
		}
	}
	return &TransactionResponse{
		ID:            t.ID,
		Reference:     reference,
		WalletID:      t.WalletID,
		Description:   t.Description,
		Amount:        t.Amount,
		DisplayAmount: utils.SignedMinorUnits(t.Amount, t.Type == db.TransactionExpense),
		Type:          string(t.Type),
		Date:          t.OccurredAt.UTC().Format(dateLayout),
		CreatedAt:     t.CreatedAt,
	}
}

func ToTransactionCollectionResponse(items []db.Transaction, refs *utils.ReferenceCodec) []TransactionResponse {
	responses := make([]TransactionResponse, len(items))
	for i := range items {
		responses[i] = *ToTransactionResponse(&items[i], refs)
	}
	return responses
}
