package threecommas

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	apiV1 = "/public/api/ver1"
	apiV2 = "/public/api/v2"
)

// Endpoint names. Each names one (method, path template) pair in the route table.
const (
	EndpointGetDeals                  = "get_deals"
	EndpointDealUpdateMaxSafetyOrders = "deal_update_max_safety_orders"
	EndpointDealPanicSell             = "deal_panic_sell"
	EndpointDealCancel                = "deal_cancel"
	EndpointDealUpdateTakeProfit      = "deal_update_tp"
	EndpointGetDeal                   = "get_deal"
	EndpointGetDealSafetyOrders       = "get_deal_safety_orders"
	EndpointDealAddFunds              = "deal_add_funds"

	EndpointGetBotsBlackList     = "get_bots_black_list"
	EndpointBotsUpdateBlackList  = "bots_update_black_list"
	EndpointBotCreate            = "bot_create"
	EndpointGetBots              = "get_bots"
	EndpointGetBotsStats         = "get_bots_stats"
	EndpointBotUpdate            = "bot_update"
	EndpointBotDisable           = "bot_disable"
	EndpointBotEnable            = "bot_enable"
	EndpointBotStartNewDeal      = "bot_start_new_deal"
	EndpointBotDelete            = "bot_delete"
	EndpointBotPanicSellAllDeals = "bot_panic_sell_all_deals"
	EndpointBotCancelAllDeals    = "bot_cancel_all_deals"
	EndpointBotShow              = "bot_show"

	EndpointCreateAIGridBot            = "create_ai_grid_bot"
	EndpointCreateGridBot              = "create_grid_bot"
	EndpointGetAIGridBotsSettings      = "get_ai_grid_bots_settings"
	EndpointGetGridBots                = "get_grid_bots"
	EndpointGetGridBotMarketOrders     = "get_grid_bot_market_orders"
	EndpointGetGridBotProfits          = "get_grid_bot_profits"
	EndpointEditAIGridBot              = "edit_ai_grid_bot"
	EndpointEditGridBot                = "edit_grid_bot"
	EndpointGridBotShow                = "grid_bot_show"
	EndpointDeleteGridBot              = "delete_grid_bot"
	EndpointDisableGridBot             = "disable_grid_bot"
	EndpointEnableGridBot              = "enable_grid_bot"
	EndpointGetGridBotRequiredBalances = "get_grid_bot_required_balances"

	EndpointSmartTradesCreateSimpleSell = "smart_trades_create_simple_sell"
	EndpointSmartTradesCreateSimpleBuy  = "smart_trades_create_simple_buy"
	EndpointSmartTradesCreateSmartSell  = "smart_trades_create_smart_sell"
	EndpointSmartTradesCreateSmartCover = "smart_trades_create_smart_cover"
	EndpointSmartTradesCreateSmartTrade = "smart_trades_create_smart_trade"
	EndpointSmartTrades                 = "smart_trades"
	EndpointSmartTradesV2               = "smart_trades_v2"
	EndpointSmartTradesStepPanicSell    = "smart_trades_step_panic_sell"
	EndpointSmartTradesUpdate           = "smart_trades_update"
	EndpointSmartTradesCancel           = "smart_trades_cancel"
	EndpointSmartTradesPanicSell        = "smart_trades_panic_sell"
	EndpointSmartTradesForceProcess     = "smart_trades_force_process"

	EndpointAccountsNew           = "accounts_new"
	EndpointAccounts              = "accounts"
	EndpointAccountsMarketList    = "accounts_market_list"
	EndpointAccountsCurrencyRates = "accounts_currency_rates"
	EndpointAccountSellAllToUSD   = "account_sell_all_to_usd"
	EndpointAccountSellAllToBTC   = "account_sell_all_to_btc"
	EndpointAccountLoadBalances   = "account_load_balances"
	EndpointAccountRename         = "account_rename"
	EndpointAccountPieChartData   = "account_pie_chart_data"
	EndpointAccountTableData      = "account_table_data"
	EndpointAccountRemove         = "account_remove"
)

// V2SmartTradesPath is the alternate listing route used by NewClientV2.
const V2SmartTradesPath = "/v2/smart_trades?"

// Endpoint binds a name to an HTTP method and a path template.
// Templates keep the upstream's trailing '?' and use {key} placeholders that are filled
// from the parameter of the same key, which therefore also lands in the signed query.
type Endpoint struct {
	Name   string
	Method string
	Path   string
}

// Expand substitutes every {key} placeholder with the matching parameter value.
func (e Endpoint) Expand(params Params) (string, error) {
	return expandPath(e.Path, params)
}

func expandPath(tmpl string, params Params) (string, error) {
	if !strings.Contains(tmpl, "{") {
		return tmpl, nil
	}
	var b strings.Builder
	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder in %q", tmpl)
		}
		key := rest[open+1 : open+end]
		value, ok := params.pathValue(key)
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingPathParam, key)
		}
		if !validPathValue(value) {
			return "", fmt.Errorf("%w: %s=%q", ErrInvalidPathParam, key, value)
		}
		b.WriteString(rest[:open])
		b.WriteString(value)
		rest = rest[open+end+1:]
	}
}

// validPathValue accepts only characters that reach the wire unescaped, so the signed
// path is the path the server sees. "." and ".." are rejected as segments.
func validPathValue(v string) bool {
	if v == "." || v == ".." {
		return false
	}
	for i := 0; i < len(v); i++ {
		if c := v[i]; !unreserved(c) && c != ',' {
			return false
		}
	}
	return true
}

func route(name, method, path string) Endpoint {
	return Endpoint{Name: name, Method: method, Path: path}
}

// DefaultRoutes returns a fresh copy of the v1 route table.
func DefaultRoutes() map[string]Endpoint {
	list := []Endpoint{
		// deals
		route(EndpointGetDeals, http.MethodGet, apiV1+"/deals?"),
		route(EndpointDealUpdateMaxSafetyOrders, http.MethodPost, apiV1+"/deals/{deal_id}/update_max_safety_orders?"),
		route(EndpointDealPanicSell, http.MethodPost, apiV1+"/deals/{deal_id}/panic_sell?"),
		route(EndpointDealCancel, http.MethodPost, apiV1+"/deals/{deal_id}/cancel?"),
		route(EndpointDealUpdateTakeProfit, http.MethodPost, apiV1+"/deals/{deal_id}/update_tp?"),
		route(EndpointGetDeal, http.MethodGet, apiV1+"/deals/{deal_id}/show?"),
		route(EndpointGetDealSafetyOrders, http.MethodGet, apiV1+"/deals/{deal_id}/market_orders?"),
		route(EndpointDealAddFunds, http.MethodPost, apiV1+"/deals/{deal_id}/add_funds?"),

		// bots
		route(EndpointGetBotsBlackList, http.MethodGet, apiV1+"/bots/pairs_black_list?"),
		route(EndpointBotsUpdateBlackList, http.MethodPost, apiV1+"/bots/update_pairs_black_list?"),
		route(EndpointBotCreate, http.MethodPost, apiV1+"/bots/create_bot?"),
		route(EndpointGetBots, http.MethodGet, apiV1+"/bots?"),
		route(EndpointGetBotsStats, http.MethodGet, apiV1+"/bots/stats?"),
		route(EndpointBotUpdate, http.MethodPatch, apiV1+"/bots/{bot_id}/update?"),
		route(EndpointBotDisable, http.MethodPost, apiV1+"/bots/{bot_id}/disable?"),
		route(EndpointBotEnable, http.MethodPost, apiV1+"/bots/{bot_id}/enable?"),
		route(EndpointBotStartNewDeal, http.MethodPost, apiV1+"/bots/{bot_id}/start_new_deal?"),
		route(EndpointBotDelete, http.MethodPost, apiV1+"/bots/{bot_id}/delete?"),
		route(EndpointBotPanicSellAllDeals, http.MethodPost, apiV1+"/bots/{bot_id}/panic_sell_all_deals?"),
		route(EndpointBotCancelAllDeals, http.MethodPost, apiV1+"/bots/{bot_id}/cancel_all_deals?"),
		route(EndpointBotShow, http.MethodGet, apiV1+"/bots/{bot_id}/show?"),

		// grid bots
		route(EndpointCreateAIGridBot, http.MethodPost, apiV1+"/grid_bots/ai?"),
		route(EndpointCreateGridBot, http.MethodPost, apiV1+"/grid_bots/manual?"),
		route(EndpointGetAIGridBotsSettings, http.MethodGet, apiV1+"/grid_bots/ai_settings?"),
		route(EndpointGetGridBots, http.MethodGet, apiV1+"/grid_bots?"),
		route(EndpointGetGridBotMarketOrders, http.MethodGet, apiV1+"/grid_bots/{grid_bot_id}/market_orders?"),
		route(EndpointGetGridBotProfits, http.MethodGet, apiV1+"/grid_bots/{grid_bot_id}/profits?"),
		route(EndpointEditAIGridBot, http.MethodPatch, apiV1+"/grid_bots/{id}/ai?"),
		route(EndpointEditGridBot, http.MethodPatch, apiV1+"/grid_bots/{id}/manual?"),
		route(EndpointGridBotShow, http.MethodGet, apiV1+"/grid_bots/{grid_bot_id}?"),
		route(EndpointDeleteGridBot, http.MethodDelete, apiV1+"/grid_bots/{grid_bot_id}?"),
		route(EndpointDisableGridBot, http.MethodPost, apiV1+"/grid_bots/{grid_bot_id}/disable?"),
		route(EndpointEnableGridBot, http.MethodPost, apiV1+"/grid_bots/{grid_bot_id}/enable?"),
		route(EndpointGetGridBotRequiredBalances, http.MethodGet, apiV1+"/grid_bots/{grid_bot_id}/required_balances?"),

		// smart trades
		route(EndpointSmartTradesCreateSimpleSell, http.MethodPost, apiV1+"/smart_trades/create_simple_sell?"),
		route(EndpointSmartTradesCreateSimpleBuy, http.MethodPost, apiV1+"/smart_trades/create_simple_buy?"),
		route(EndpointSmartTradesCreateSmartSell, http.MethodPost, apiV1+"/smart_trades/create_smart_sell?"),
		route(EndpointSmartTradesCreateSmartCover, http.MethodPost, apiV1+"/smart_trades/create_smart_cover?"),
		route(EndpointSmartTradesCreateSmartTrade, http.MethodPost, apiV1+"/smart_trades/create_smart_trade?"),
		route(EndpointSmartTrades, http.MethodGet, apiV1+"/smart_trades?"),
		route(EndpointSmartTradesV2, http.MethodGet, apiV2+"/smart_trades?"),
		route(EndpointSmartTradesStepPanicSell, http.MethodPost, apiV1+"/smart_trades/{smart_trade_id}/step_panic_sell?"),
		route(EndpointSmartTradesUpdate, http.MethodPatch, apiV1+"/smart_trades/{smart_trade_id}/update?"),
		route(EndpointSmartTradesCancel, http.MethodPost, apiV1+"/smart_trades/{smart_trade_id}/cancel?"),
		route(EndpointSmartTradesPanicSell, http.MethodPost, apiV1+"/smart_trades/{smart_trade_id}/panic_sell?"),
		route(EndpointSmartTradesForceProcess, http.MethodPost, apiV1+"/smart_trades/{smart_trade_id}/force_process?"),

		// accounts
		route(EndpointAccountsNew, http.MethodPost, apiV1+"/accounts/new?"),
		route(EndpointAccounts, http.MethodGet, apiV1+"/accounts?"),
		route(EndpointAccountsMarketList, http.MethodGet, apiV1+"/accounts/market_list?"),
		route(EndpointAccountsCurrencyRates, http.MethodGet, apiV1+"/accounts/currency_rates?"),
		route(EndpointAccountSellAllToUSD, http.MethodPost, apiV1+"/accounts/{account_id}/sell_all_to_usd?"),
		route(EndpointAccountSellAllToBTC, http.MethodPost, apiV1+"/accounts/{account_id}/sell_all_to_btc?"),
		route(EndpointAccountLoadBalances, http.MethodPost, apiV1+"/accounts/{account_id}/load_balances?"),
		route(EndpointAccountRename, http.MethodPost, apiV1+"/accounts/{account_id}/rename?"),
		route(EndpointAccountPieChartData, http.MethodPost, apiV1+"/accounts/{account_id}/pie_chart_data?"),
		route(EndpointAccountTableData, http.MethodPost, apiV1+"/accounts/{account_id}/account_table_data?"),
		route(EndpointAccountRemove, http.MethodPost, apiV1+"/accounts/{account_id}/remove?"),
	}

	routes := make(map[string]Endpoint, len(list))
	for _, ep := range list {
		routes[ep.Name] = ep
	}
	return routes
}

func sortedRoutes(routes map[string]Endpoint) []Endpoint {
	out := make([]Endpoint, 0, len(routes))
	for _, ep := range routes {
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
