package threecommas

import "context"

// SmartTradesCreateSimpleSell 创建简单卖单
func (c *Client) SmartTradesCreateSimpleSell(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTradesCreateSimpleSell, params)
}

// SmartTradesCreateSimpleBuy 创建简单买单
func (c *Client) SmartTradesCreateSimpleBuy(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTradesCreateSimpleBuy, params)
}

// SmartTradesCreateSmartSell 创建 smart sell
func (c *Client) SmartTradesCreateSmartSell(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTradesCreateSmartSell, params)
}

// SmartTradesCreateSmartCover 创建 smart cover
func (c *Client) SmartTradesCreateSmartCover(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTradesCreateSmartCover, params)
}

// SmartTradesCreateSmartTrade 创建通用 smart trade
func (c *Client) SmartTradesCreateSmartTrade(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTradesCreateSmartTrade, params)
}

// SmartTrades v1 列表
func (c *Client) SmartTrades(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTrades, params)
}

// SmartTradesV2 v2 列表；路径由路由表决定，NewClientV2 会替换它
func (c *Client) SmartTradesV2(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTradesV2, params)
}

// SmartTradesStepPanicSell params 中必须包含 smart_trade_id
func (c *Client) SmartTradesStepPanicSell(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTradesStepPanicSell, params)
}

// SmartTradesUpdate PATCH，params 中必须包含 smart_trade_id
func (c *Client) SmartTradesUpdate(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointSmartTradesUpdate, params)
}

func (c *Client) SmartTradesCancel(ctx context.Context, smartTradeID int64) Result {
	return c.Call(ctx, EndpointSmartTradesCancel, NewParams("smart_trade_id", smartTradeID))
}

func (c *Client) SmartTradesPanicSell(ctx context.Context, smartTradeID int64) Result {
	return c.Call(ctx, EndpointSmartTradesPanicSell, NewParams("smart_trade_id", smartTradeID))
}

func (c *Client) SmartTradesForceProcess(ctx context.Context, smartTradeID int64) Result {
	return c.Call(ctx, EndpointSmartTradesForceProcess, NewParams("smart_trade_id", smartTradeID))
}
