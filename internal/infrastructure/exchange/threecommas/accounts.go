package threecommas

import "context"

// AccountsNew 添加交易所账户
func (c *Client) AccountsNew(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointAccountsNew, params)
}

// Accounts 账户列表
func (c *Client) Accounts(ctx context.Context) Result {
	return c.Call(ctx, EndpointAccounts, nil)
}

// AccountsMarketList 支持的交易所列表
func (c *Client) AccountsMarketList(ctx context.Context) Result {
	return c.Call(ctx, EndpointAccountsMarketList, nil)
}

// AccountsCurrencyRates 币种汇率
func (c *Client) AccountsCurrencyRates(ctx context.Context) Result {
	return c.Call(ctx, EndpointAccountsCurrencyRates, nil)
}

func (c *Client) AccountSellAllToUSD(ctx context.Context, accountID int64) Result {
	return c.Call(ctx, EndpointAccountSellAllToUSD, NewParams("account_id", accountID))
}

func (c *Client) AccountSellAllToBTC(ctx context.Context, accountID int64) Result {
	return c.Call(ctx, EndpointAccountSellAllToBTC, NewParams("account_id", accountID))
}

// AccountLoadBalances 刷新余额
func (c *Client) AccountLoadBalances(ctx context.Context, accountID int64) Result {
	return c.Call(ctx, EndpointAccountLoadBalances, NewParams("account_id", accountID))
}

// AccountRename params 中必须包含 account_id
func (c *Client) AccountRename(ctx context.Context, params Params) Result {
	return c.Call(ctx, EndpointAccountRename, params)
}

func (c *Client) AccountPieChartData(ctx context.Context, accountID int64) Result {
	return c.Call(ctx, EndpointAccountPieChartData, NewParams("account_id", accountID))
}

func (c *Client) AccountTableData(ctx context.Context, accountID int64) Result {
	return c.Call(ctx, EndpointAccountTableData, NewParams("account_id", accountID))
}

func (c *Client) AccountRemove(ctx context.Context, accountID int64) Result {
	return c.Call(ctx, EndpointAccountRemove, NewParams("account_id", accountID))
}
