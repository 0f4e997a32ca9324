package bitrixclient

import (
	"context"

	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
)

const methodDealList = "crm.deal.list"

func (c *BitrixClient) ListDeals(ctx context.Context, params bitrixdomain.ListParams) (*bitrixdomain.ListPage, error) {
	payload := map[string]any{
		"filter": params.Filter,
		"select": params.Select,
		"start":  params.Start,
	}

	env, err := c.call(ctx, methodDealList, payload)
	if err != nil {
		return nil, err
	}

	return decodeList(methodDealList, env)
}
