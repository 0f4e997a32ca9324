package bitrixclient

import (
	"context"

	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
)

const methodItemGet = "crm.item.get"

func (c *BitrixClient) GetItem(ctx context.Context, entityTypeID, id int64) (bitrixdomain.RawRecord, error) {
	payload := map[string]any{
		"entityTypeId": entityTypeID,
		"id":           id,
	}

	env, err := c.call(ctx, methodItemGet, payload)
	if err != nil {
		return nil, err
	}

	return decodeRecord(methodItemGet, env, "item")
}
