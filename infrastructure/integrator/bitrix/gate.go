package bitrix

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vfg2006/deal-mirror-api/infrastructure/crypt"
	"github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/bitrixclient"
	"github.com/vfg2006/deal-mirror-api/infrastructure/metrics"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"golang.org/x/time/rate"
)

var ErrEmptyLink = errors.New("bitrix webhook link is empty")

// Connector entrega uma DealSource autenticada
type Connector interface {
	Connect(ctx context.Context) (DealSource, error)
}

// Gate decifra o link do webhook e monta a DealSource da variante configurada.
// O limitador é compartilhado por todas as fontes criadas pelo mesmo Gate.
type Gate struct {
	cfg       config.Bitrix
	decrypter crypt.Decrypter
	limiter   *rate.Limiter
	metrics   *metrics.DealMetrics

	mu     sync.Mutex
	source DealSource
}

func NewGate(cfg config.Bitrix, decrypter crypt.Decrypter, m *metrics.DealMetrics) *Gate {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.RequestBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Gate{
		cfg:       cfg,
		decrypter: decrypter,
		limiter:   limiter,
		metrics:   m,
	}
}

func (g *Gate) Connect(ctx context.Context) (DealSource, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.source != nil {
		return g.source, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if g.cfg.EncryptedLink == "" {
		return nil, ErrEmptyLink
	}

	link, err := g.decrypter.Decrypt(g.cfg.EncryptedLink)
	if err != nil {
		return nil, fmt.Errorf("erro ao decifrar link do Bitrix: %w", err)
	}

	client := bitrixclient.NewClient(link, bitrixclient.Options{
		Timeout: g.cfg.RequestTimeout,
		Limiter: g.limiter,
		Metrics: g.metrics,
	})

	source, err := NewSource(g.cfg, client)
	if err != nil {
		return nil, err
	}

	g.source = source
	return source, nil
}
