package bitrix

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
)

// PageSize é o tamanho fixo de página dos métodos *.list
const PageSize = 50

// maxPages interrompe uma paginação que nunca devolve página curta
const maxPages = 10000

type pageFetcher func(ctx context.Context, start int) (*bitrixdomain.ListPage, error)

// fetchAllPages percorre as páginas em sequência até receber uma página curta.
// O total informado pelo CRM serve apenas para pré-alocar e para alertar sobre divergências:
// enquanto chegarem páginas cheias a leitura continua, mesmo além do total.
func fetchAllPages(ctx context.Context, method string, fetch pageFetcher) ([]bitrixdomain.RawRecord, error) {
	var (
		all   []bitrixdomain.RawRecord
		total int
		start int
	)

	for pages := 0; ; pages++ {
		if pages >= maxPages {
			return nil, fmt.Errorf("%s: paginação excedeu %d páginas", method, maxPages)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, start)
		if err != nil {
			return nil, fmt.Errorf("%s: página start=%d: %w", method, start, err)
		}

		if pages == 0 {
			total = page.Total
			if total > 0 && total <= maxPages*PageSize {
				all = make([]bitrixdomain.RawRecord, 0, total)
			}
		}

		all = append(all, page.Items...)

		if len(page.Items) < PageSize {
			break
		}

		start += PageSize
	}

	if total != len(all) {
		logrus.WithFields(logrus.Fields{
			"method":   method,
			"total":    total,
			"received": len(all),
		}).Warn("Total informado pelo Bitrix diverge da quantidade recebida")
	}

	return all, nil
}
