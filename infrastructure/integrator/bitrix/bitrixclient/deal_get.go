package bitrixclient

import (
	"context"

	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
)

const methodDealGet = "crm.deal.get"

func (c *BitrixClient) GetDeal(ctx context.Context, id int64) (bitrixdomain.RawRecord, error) {
	env, err := c.call(ctx, methodDealGet, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}

	return decodeRecord(methodDealGet, env, "")
}
