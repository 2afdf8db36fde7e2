// Copyright (c) 2025 cdrappi

package deribit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
)

// OrderRequest describes a limit order for Buy and Sell. Quantity is in
// contracts and Price is in the instrument's quote currency.
type OrderRequest struct {
	Instrument string
	Quantity   int64
	Price      decimal.Decimal

	// PostOnly orders only ever add liquidity; the exchange adjusts or
	// rejects them instead of letting them cross the book.
	PostOnly bool

	// Label is an optional client-side identifier attached to the order.
	Label string
}

func (r *OrderRequest) params() Params {
	params := Params{
		"instrument": String(r.Instrument),
		"quantity":   Int(r.Quantity),
		"price":      Dec(r.Price),
	}
	if len(r.Label) != 0 {
		params["label"] = String(r.Label)
	}
	if r.PostOnly {
		params["postOnly"] = Bool(r.PostOnly)
	}
	return params
}

// GetAccount retrieves account balances and margin information.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	account := new(Account)
	if err := call(ctx, c, "/api/v1/private/account", nil, account); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get account", "err", err)
		}
		return nil, err
	}
	return account, nil
}

// Buy places a buy order.
func (c *Client) Buy(ctx context.Context, req *OrderRequest) (*OrderResult, error) {
	result := new(OrderResult)
	if err := call(ctx, c, "/api/v1/private/buy", req.params(), result); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not place buy order", "instrument", req.Instrument, "quantity", req.Quantity, "price", req.Price, "err", err)
		}
		return nil, err
	}
	return result, nil
}

// Sell places a sell order.
func (c *Client) Sell(ctx context.Context, req *OrderRequest) (*OrderResult, error) {
	result := new(OrderResult)
	if err := call(ctx, c, "/api/v1/private/sell", req.params(), result); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not place sell order", "instrument", req.Instrument, "quantity", req.Quantity, "price", req.Price, "err", err)
		}
		return nil, err
	}
	return result, nil
}

// Cancel cancels a single order.
func (c *Client) Cancel(ctx context.Context, orderID int64) (*OrderResult, error) {
	params := Params{
		"orderId": Int(orderID),
	}
	result := new(OrderResult)
	if err := call(ctx, c, "/api/v1/private/cancel", params, result); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not cancel order", "orderID", orderID, "err", err)
		}
		return nil, err
	}
	return result, nil
}

// CancelAll cancels all open orders of the given type ("all", "futures" or
// "options"). An empty orderType cancels everything.
func (c *Client) CancelAll(ctx context.Context, orderType string) (*Result, error) {
	if len(orderType) == 0 {
		orderType = "all"
	}
	params := Params{
		"type": String(orderType),
	}
	res, err := c.Do(ctx, "/api/v1/private/cancelall", params)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not cancel all orders", "type", orderType, "err", err)
		}
		return nil, err
	}
	return res, nil
}

// Edit changes the quantity and price of an open order.
func (c *Client) Edit(ctx context.Context, orderID, quantity int64, price decimal.Decimal) (*OrderResult, error) {
	params := Params{
		"orderId":  Int(orderID),
		"quantity": Int(quantity),
		"price":    Dec(price),
	}
	result := new(OrderResult)
	if err := call(ctx, c, "/api/v1/private/edit", params, result); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not edit order", "orderID", orderID, "err", err)
		}
		return nil, err
	}
	return result, nil
}

// GetOpenOrders retrieves open orders, optionally narrowed to an instrument
// or a single order id; zero values are ignored.
func (c *Client) GetOpenOrders(ctx context.Context, instrument string, orderID int64) ([]*Order, error) {
	params := make(Params)
	if len(instrument) != 0 {
		params["instrument"] = String(instrument)
	}
	if orderID != 0 {
		params["orderId"] = Int(orderID)
	}
	var orders []*Order
	if err := call(ctx, c, "/api/v1/private/getopenorders", params, &orders); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get open orders", "instrument", instrument, "err", err)
		}
		return nil, err
	}
	return orders, nil
}

// GetPositions retrieves all open positions.
func (c *Client) GetPositions(ctx context.Context) ([]*Position, error) {
	var positions []*Position
	if err := call(ctx, c, "/api/v1/private/positions", nil, &positions); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get positions", "err", err)
		}
		return nil, err
	}
	return positions, nil
}

// GetOrderHistory retrieves historical orders, most recent first. Count
// limits the number of orders and is ignored when zero.
func (c *Client) GetOrderHistory(ctx context.Context, count int) ([]*Order, error) {
	params := make(Params)
	if count != 0 {
		params["count"] = Int(int64(count))
	}
	var orders []*Order
	if err := call(ctx, c, "/api/v1/private/orderhistory", params, &orders); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get order history", "err", err)
		}
		return nil, err
	}
	return orders, nil
}

// GetTradeHistory retrieves the account's trade history. An empty
// instrument selects all instruments; count and startTradeID are ignored
// when zero.
func (c *Client) GetTradeHistory(ctx context.Context, instrument string, count int, startTradeID int64) ([]*UserTrade, error) {
	if len(instrument) == 0 {
		instrument = "all"
	}
	params := Params{
		"instrument": String(instrument),
	}
	if count != 0 {
		params["count"] = Int(int64(count))
	}
	if startTradeID != 0 {
		params["startTradeId"] = Int(startTradeID)
	}
	var trades []*UserTrade
	if err := call(ctx, c, "/api/v1/private/tradehistory", params, &trades); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get trade history", "instrument", instrument, "err", err)
		}
		return nil, err
	}
	return trades, nil
}
