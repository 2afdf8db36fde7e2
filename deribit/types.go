// Copyright (c) 2025 cdrappi

package deribit

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// envelope is the top-level structure of every REST reply.
type envelope struct {
	Success *bool `json:"success"`

	Result json.RawMessage `json:"result"`

	Message *string `json:"message"`
}

type OrderBookEntry struct {
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Price    decimal.Decimal `json:"price"`
}

type OrderBook struct {
	Instrument string `json:"instrument"`
	State      string `json:"state"`

	Bids []*OrderBookEntry `json:"bids"`
	Asks []*OrderBookEntry `json:"asks"`

	SettlementPrice decimal.Decimal `json:"settlementPrice"`
	Last            decimal.Decimal `json:"last"`
	Low             decimal.Decimal `json:"low"`
	High            decimal.Decimal `json:"high"`
	Mark            decimal.Decimal `json:"mark"`

	UnixMilli int64 `json:"tstamp"`
}

type Instrument struct {
	InstrumentName string `json:"instrumentName"`
	Kind           string `json:"kind"` // "future" or "option"

	BaseCurrency string `json:"baseCurrency"`
	Currency     string `json:"currency"`

	IsActive   bool   `json:"isActive"`
	Created    string `json:"created"`
	Expiration string `json:"expiration"`
	Settlement string `json:"settlement"`

	MinTradeSize   decimal.Decimal `json:"minTradeSize"`
	TickSize       decimal.Decimal `json:"tickSize"`
	ContractSize   decimal.Decimal `json:"contractSize"`
	PricePrecision int             `json:"pricePrecision"`

	// Option-only fields.
	OptionType string          `json:"optionType"`
	Strike     decimal.Decimal `json:"strike"`
}

type Currency struct {
	Currency        string          `json:"currency"`
	CurrencyLong    string          `json:"currencyLong"`
	MinConfirmation int             `json:"minConfirmation"`
	TxFee           decimal.Decimal `json:"txFee"`
	IsActive        bool            `json:"isActive"`
	CoinType        string          `json:"coinType"`
}

type Trade struct {
	TradeID    int64  `json:"tradeId"`
	Instrument string `json:"instrument"`

	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`

	Direction     string `json:"direction"`
	TickDirection int    `json:"tickDirection"`

	IndexPrice decimal.Decimal `json:"indexPrice"`

	UnixMilli int64 `json:"timeStamp"`
}

type Summary struct {
	InstrumentName string `json:"instrumentName"`

	OpenInterest decimal.Decimal `json:"openInterest"`
	High         decimal.Decimal `json:"high"`
	Low          decimal.Decimal `json:"low"`
	Volume       decimal.Decimal `json:"volume"`
	VolumeBtc    decimal.Decimal `json:"volumeBtc"`

	Last     decimal.Decimal `json:"last"`
	BidPrice decimal.Decimal `json:"bidPrice"`
	AskPrice decimal.Decimal `json:"askPrice"`
	MidPrice decimal.Decimal `json:"midPrice"`

	MarkPrice   decimal.Decimal `json:"markPrice"`
	EstDelPrice decimal.Decimal `json:"estDelPrice"`

	Created string `json:"created"`
}

// Index holds the current index prices.
type Index struct {
	Btc decimal.Decimal `json:"btc"`
	Edp decimal.Decimal `json:"edp"` // estimated delivery price
}

type MarketStats struct {
	FuturesVolume decimal.Decimal `json:"futuresVolume"`
	CallsVolume   decimal.Decimal `json:"callsVolume"`
	PutsVolume    decimal.Decimal `json:"putsVolume"`
}

type Stats struct {
	BtcUsd  *MarketStats `json:"btc_usd"`
	Created string       `json:"created"`
}

type Account struct {
	Equity            decimal.Decimal `json:"equity"`
	Balance           decimal.Decimal `json:"balance"`
	MarginBalance     decimal.Decimal `json:"marginBalance"`
	AvailableFunds    decimal.Decimal `json:"availableFunds"`
	InitialMargin     decimal.Decimal `json:"initialMargin"`
	MaintenanceMargin decimal.Decimal `json:"maintenanceMargin"`

	SessionUPL decimal.Decimal `json:"SUPL"`
	SessionRPL decimal.Decimal `json:"SRPL"`
	PNL        decimal.Decimal `json:"PNL"`

	DepositAddress string `json:"depositAddress"`
}

type Order struct {
	OrderID    int64  `json:"orderId"`
	Instrument string `json:"instrument"`
	Direction  string `json:"direction"`
	State      string `json:"state"`
	Label      string `json:"label"`

	Price          decimal.Decimal `json:"price"`
	Quantity       decimal.Decimal `json:"quantity"`
	FilledQuantity decimal.Decimal `json:"filledQuantity"`
	AvgPrice       decimal.Decimal `json:"avgPrice"`
	Commission     decimal.Decimal `json:"commission"`

	PostOnly bool `json:"postOnly"`
	API      bool `json:"api"`

	CreatedAtMilli int64 `json:"created"`
	UpdatedAtMilli int64 `json:"lastUpdate"`
}

// OrderResult is the reply shape of the order placement and management
// endpoints: the affected order plus any trades it produced.
type OrderResult struct {
	Order  *Order       `json:"order"`
	Trades []*UserTrade `json:"trades"`
}

type UserTrade struct {
	TradeID  int64 `json:"tradeId"`
	TradeSeq int64 `json:"tradeSeq"`
	OrderID  int64 `json:"orderId"`

	Instrument string `json:"instrument"`
	Direction  string `json:"direction"`
	Liquidity  string `json:"liquidity"`
	MatchingID int64  `json:"matchingId"`

	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`

	Fee         decimal.Decimal `json:"fee"`
	FeeCurrency string          `json:"feeCurrency"`

	TickDirection int  `json:"tickDirection"`
	SelfTrade     bool `json:"selfTrade"`

	UnixMilli int64 `json:"timeStamp"`
}

type Position struct {
	Instrument string `json:"instrument"`
	Kind       string `json:"kind"`
	Direction  string `json:"direction"`

	Size    decimal.Decimal `json:"size"`
	SizeBtc decimal.Decimal `json:"sizeBtc"`

	AveragePrice    decimal.Decimal `json:"averagePrice"`
	MarkPrice       decimal.Decimal `json:"markPrice"`
	IndexPrice      decimal.Decimal `json:"indexPrice"`
	EstLiqPrice     decimal.Decimal `json:"estLiqPrice"`
	SettlementPrice decimal.Decimal `json:"settlementPrice"`

	FloatingPl decimal.Decimal `json:"floatingPl"`
	RealizedPl decimal.Decimal `json:"realizedPl"`
	ProfitLoss decimal.Decimal `json:"profitLoss"`

	InitialMargin     decimal.Decimal `json:"initialMargin"`
	MaintenanceMargin decimal.Decimal `json:"maintenanceMargin"`
	OpenOrderMargin   decimal.Decimal `json:"openOrderMargin"`

	Delta decimal.Decimal `json:"delta"`
}
