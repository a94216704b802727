package threecommas

import "context"

// ===== Grid bots =====

func (c *Client) CreateAIGridBot(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointCreateAIGridBot, params)
}

func (c *Client) CreateGridBot(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointCreateGridBot, params)
}

func (c *Client) GetAIGridBotsSettings(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointGetAIGridBotsSettings, params)
}

func (c *Client) GetGridBots(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointGetGridBots, params)
}

func (c *Client) GetGridBotMarketOrders(ctx context.Context, gridBotID int64) Result {
	return c.Call(ctx, EndpointGetGridBotMarketOrders, NewParams("grid_bot_id", gridBotID))
}

func (c *Client) GetGridBotProfits(ctx context.Context, gridBotID int64) Result {
	return c.Call(ctx, EndpointGetGridBotProfits, NewParams("grid_bot_id", gridBotID))
}

// EditAIGridBot PATCH /grid_bots/{id}/ai; the grid bot is addressed by "id", not "grid_bot_id".
func (c *Client) EditAIGridBot(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointEditAIGridBot, params)
}

// EditGridBot PATCH /grid_bots/{id}/manual
func (c *Client) EditGridBot(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointEditGridBot, params)
}

func (c *Client) GridBotShow(ctx context.Context, gridBotID int64) Result {
	return c.Call(ctx, EndpointGridBotShow, NewParams("grid_bot_id", gridBotID))
}

func (c *Client) DeleteGridBot(ctx context.Context, gridBotID int64) Result {
	return c.Call(ctx, EndpointDeleteGridBot, NewParams("grid_bot_id", gridBotID))
}

func (c *Client) DisableGridBot(ctx context.Context, gridBotID int64) Result {
	return c.Call(ctx, EndpointDisableGridBot, NewParams("grid_bot_id", gridBotID))
}

func (c *Client) EnableGridBot(ctx context.Context, gridBotID int64) Result {
	return c.Call(ctx, EndpointEnableGridBot, NewParams("grid_bot_id", gridBotID))
}

func (c *Client) GetGridBotRequiredBalances(ctx context.Context, gridBotID int64) Result {
	return c.Call(ctx, EndpointGetGridBotRequiredBalances, NewParams("grid_bot_id", gridBotID))
}
