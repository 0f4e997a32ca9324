package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/deal-mirror-api/infrastructure/repository"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
)

// DefaultBatchSize é o tamanho do lote de cada transação de cópia
const DefaultBatchSize = 500

// CopyDeals copia todos os deals de from para to, criando a tabela de destino se preciso.
// Cada lote é gravado numa transação; linhas com erro são contadas em Failed.
func CopyDeals(ctx context.Context, from, to repository.DealRepository, batchSize int) (*domain.UpsertResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	startTime := time.Now()

	if err := to.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("erro ao preparar banco de destino: %w", err)
	}

	deals, err := from.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler deals da origem: %w", err)
	}

	logrus.WithField("deals", len(deals)).Info("Iniciando cópia de deals")

	total := &domain.UpsertResult{}
	for start := 0; start < len(deals); start += batchSize {
		end := min(start+batchSize, len(deals))

		result, err := to.UpsertAll(ctx, deals[start:end])
		if err != nil {
			return total, fmt.Errorf("erro ao gravar lote %d-%d: %w", start, end, err)
		}

		total.Saved += result.Saved
		total.Failed += result.Failed

		logrus.WithFields(logrus.Fields{
			"processed": end,
			"total":     len(deals),
		}).Info("Progresso da cópia de deals")
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"saved":    total.Saved,
		"failed":   total.Failed,
	}).Info("Cópia de deals concluída")

	return total, nil
}
