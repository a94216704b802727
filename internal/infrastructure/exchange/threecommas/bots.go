package threecommas

import "context"

// GetBotsBlackList GET /bots/pairs_black_list (no parameters)
func (c *Client) GetBotsBlackList(ctx context.Context) Result {
	return c.Call(ctx, EndpointGetBotsBlackList, nil)
}

func (c *Client) BotsUpdateBlackList(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointBotsUpdateBlackList, params)
}

func (c *Client) BotCreate(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointBotCreate, params)
}

func (c *Client) GetBots(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointGetBots, params)
}

func (c *Client) GetBotsStats(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointGetBotsStats, params)
}

// BotUpdate PATCH /bots/{bot_id}/update; params must carry bot_id.
func (c *Client) BotUpdate(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointBotUpdate, params)
}

func (c *Client) BotDisable(ctx context.Context, botID int64) Result {
	return c.Call(ctx, EndpointBotDisable, NewParams("bot_id", botID))
}

func (c *Client) BotEnable(ctx context.Context, botID int64) Result {
	return c.Call(ctx, EndpointBotEnable, NewParams("bot_id", botID))
}

// BotStartNewDeal POST /bots/{bot_id}/start_new_deal; params must carry bot_id.
func (c *Client) BotStartNewDeal(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointBotStartNewDeal, params)
}

func (c *Client) BotDelete(ctx context.Context, botID int64) Result {
	return c.Call(ctx, EndpointBotDelete, NewParams("bot_id", botID))
}

func (c *Client) BotPanicSellAllDeals(ctx context.Context, botID int64) Result {
	return c.Call(ctx, EndpointBotPanicSellAllDeals, NewParams("bot_id", botID))
}

func (c *Client) BotCancelAllDeals(ctx context.Context, botID int64) Result {
	return c.Call(ctx, EndpointBotCancelAllDeals, NewParams("bot_id", botID))
}

func (c *Client) BotShow(ctx context.Context, botID int64) Result {
	return c.Call(ctx, EndpointBotShow, NewParams("bot_id", botID))
}
