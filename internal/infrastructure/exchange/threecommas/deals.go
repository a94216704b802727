package threecommas

import (
	"context"

	"github.com/shopspring/decimal"
)

// GetDeals GET /deals
func (c *Client) GetDeals(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointGetDeals, params)
}

// DealUpdateMaxSafetyOrders POST /deals/{deal_id}/update_max_safety_orders
func (c *Client) DealUpdateMaxSafetyOrders(ctx context.Context, dealID int64, maxSafetyOrders int) Result {
	return c.Call(ctx, EndpointDealUpdateMaxSafetyOrders, NewParams(
		"deal_id", dealID,
		"max_safety_orders", maxSafetyOrders,
	))
}

// DealPanicSell POST /deals/{deal_id}/panic_sell
func (c *Client) DealPanicSell(ctx context.Context, dealID int64) Result {
	return c.Call(ctx, EndpointDealPanicSell, NewParams("deal_id", dealID))
}

// DealCancel POST /deals/{deal_id}/cancel
func (c *Client) DealCancel(ctx context.Context, dealID int64) Result {
	return c.Call(ctx, EndpointDealCancel, NewParams("deal_id", dealID))
}

// DealUpdateTakeProfit POST /deals/{deal_id}/update_tp
func (c *Client) DealUpdateTakeProfit(ctx context.Context, dealID int64, takeProfitPercentage decimal.Decimal) Result {
	return c.Call(ctx, EndpointDealUpdateTakeProfit, NewParams(
		"deal_id", dealID,
		"new_take_profit_percentage", takeProfitPercentage,
	))
}

// GetDeal GET /deals/{deal_id}/show
func (c *Client) GetDeal(ctx context.Context, dealID int64) Result {
	return c.Call(ctx, EndpointGetDeal, NewParams("deal_id", dealID))
}

// GetDealSafetyOrders GET /deals/{deal_id}/market_orders
func (c *Client) GetDealSafetyOrders(ctx context.Context, dealID int64) Result {
	return c.Call(ctx, EndpointGetDealSafetyOrders, NewParams("deal_id", dealID))
}

// DealAddFunds POST /deals/{deal_id}/add_funds; params must carry deal_id.
func (c *Client) DealAddFunds(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointDealAddFunds, params)
}
