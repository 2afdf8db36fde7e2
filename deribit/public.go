// Copyright (c) 2025 cdrappi

package deribit

import (
	"context"
	"errors"
	"log/slog"
)

// GetOrderBook retrieves the current order book for an instrument.
func (c *Client) GetOrderBook(ctx context.Context, instrument string) (*OrderBook, error) {
	params := Params{
		"instrument": String(instrument),
	}
	book := new(OrderBook)
	if err := call(ctx, c, "/api/v1/public/getorderbook", params, book); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get order book", "instrument", instrument, "err", err)
		}
		return nil, err
	}
	return book, nil
}

// GetInstruments retrieves all tradeable instruments.
func (c *Client) GetInstruments(ctx context.Context) ([]*Instrument, error) {
	var instruments []*Instrument
	if err := call(ctx, c, "/api/v1/public/getinstruments", nil, &instruments); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get instruments", "err", err)
		}
		return nil, err
	}
	return instruments, nil
}

// GetCurrencies retrieves the supported currencies.
func (c *Client) GetCurrencies(ctx context.Context) ([]*Currency, error) {
	var currencies []*Currency
	if err := call(ctx, c, "/api/v1/public/getcurrencies", nil, &currencies); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get currencies", "err", err)
		}
		return nil, err
	}
	return currencies, nil
}

// GetLastTrades retrieves recent trades for an instrument. Count limits the
// number of trades and since skips to trades after the given trade id; both
// are ignored when zero.
func (c *Client) GetLastTrades(ctx context.Context, instrument string, count int, since int64) ([]*Trade, error) {
	params := Params{
		"instrument": String(instrument),
	}
	if since != 0 {
		params["since"] = Int(since)
	}
	if count != 0 {
		params["count"] = Int(int64(count))
	}
	var trades []*Trade
	if err := call(ctx, c, "/api/v1/public/getlasttrades", params, &trades); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get last trades", "instrument", instrument, "err", err)
		}
		return nil, err
	}
	return trades, nil
}

// GetSummary retrieves the 24h summary for an instrument.
func (c *Client) GetSummary(ctx context.Context, instrument string) (*Summary, error) {
	params := Params{
		"instrument": String(instrument),
	}
	summary := new(Summary)
	if err := call(ctx, c, "/api/v1/public/getsummary", params, summary); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get summary", "instrument", instrument, "err", err)
		}
		return nil, err
	}
	return summary, nil
}

// GetIndex retrieves the current index prices.
func (c *Client) GetIndex(ctx context.Context) (*Index, error) {
	index := new(Index)
	if err := call(ctx, c, "/api/v1/public/index", nil, index); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get index", "err", err)
		}
		return nil, err
	}
	return index, nil
}

// GetStats retrieves exchange-wide volume statistics.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	stats := new(Stats)
	if err := call(ctx, c, "/api/v1/public/stats", nil, stats); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get stats", "err", err)
		}
		return nil, err
	}
	return stats, nil
}
