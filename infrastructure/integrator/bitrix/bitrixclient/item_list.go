package bitrixclient

import (
	"context"

	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
)

const methodItemList = "crm.item.list"

// ListItems lista itens de um smart process. O filtro por entityTypeId vai no corpo, não no filter.
func (c *BitrixClient) ListItems(ctx context.Context, entityTypeID int64, params bitrixdomain.ListParams) (*bitrixdomain.ListPage, error) {
	payload := map[string]any{
		"entityTypeId": entityTypeID,
		"select":       params.Select,
		"start":        params.Start,
	}
	if len(params.Filter) > 0 {
		payload["filter"] = params.Filter
	}

	env, err := c.call(ctx, methodItemList, payload)
	if err != nil {
		return nil, err
	}

	return decodeList(methodItemList, env)
}
