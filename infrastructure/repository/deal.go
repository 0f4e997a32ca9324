package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/deal-mirror-api/infrastructure/database"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
)

const (
	dealsTable      = "deals"
	dealsColumns    = "id, title, date_create, documents_ids, city_field_value"
	upsertSavepoint = "deal_upsert"
)

var ErrNoFieldsToUpdate = errors.New("no fields to update")

const createDealsSQLite = `CREATE TABLE IF NOT EXISTS deals (
	id INTEGER PRIMARY KEY,
	title TEXT,
	date_create DATE,
	documents_ids TEXT,
	city_field_value TEXT
)`

const createDealsPostgres = `CREATE TABLE IF NOT EXISTS deals (
	id BIGINT PRIMARY KEY,
	title TEXT,
	date_create DATE,
	documents_ids TEXT,
	city_field_value TEXT
)`

type DealRepository interface {
	EnsureSchema(ctx context.Context) error
	UpsertAll(ctx context.Context, deals []*domain.Deal) (*domain.UpsertResult, error)
	ListAll(ctx context.Context) ([]*domain.Deal, error)
	GetByID(ctx context.Context, id int64) (*domain.Deal, error)
	UpdateFields(ctx context.Context, id int64, patch domain.DealPatch) (bool, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

type dealRepository struct {
	conn *database.Connection
}

func NewDealRepository(conn *database.Connection) DealRepository {
	return &dealRepository{
		conn: conn,
	}
}

func (r *dealRepository) EnsureSchema(ctx context.Context) error {
	ddl := createDealsSQLite
	if r.conn.Driver() == config.DriverPostgres {
		ddl = createDealsPostgres
	}

	if _, err := r.conn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("erro ao criar tabela deals: %w", err)
	}

	return nil
}

// UpsertAll grava os deals numa única transação, na ordem recebida.
// Cada linha fica atrás de um savepoint: a falha de uma linha é registrada e contada sem abortar as demais.
func (r *dealRepository) UpsertAll(ctx context.Context, deals []*domain.Deal) (*domain.UpsertResult, error) {
	result := &domain.UpsertResult{}
	if len(deals) == 0 {
		return result, nil
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, deal := range deals {
			if deal == nil {
				continue
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			if err := r.upsertRow(ctx, tx, deal); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}

				result.Failed++
				logrus.WithFields(logrus.Fields{
					"deal_id": deal.ID,
					"error":   describeDBError(err),
				}).Error("Erro ao gravar deal, seguindo com os demais")
				continue
			}

			result.Saved++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("erro na transação de gravação de deals: %w", err)
	}

	return result, nil
}

func (r *dealRepository) upsertRow(ctx context.Context, tx *sql.Tx, deal *domain.Deal) error {
	sqlQuery, args, err := squirrel.
		Insert(dealsTable).
		Columns("id", "title", "date_create", "documents_ids", "city_field_value").
		Values(deal.ID, deal.Title, nullableDate(deal.DateCreate), deal.DocumentsIDs, deal.City).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			date_create = EXCLUDED.date_create,
			documents_ids = EXCLUDED.documents_ids,
			city_field_value = EXCLUDED.city_field_value`).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+upsertSavepoint); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+upsertSavepoint); rbErr != nil {
			return fmt.Errorf("%w (rollback to savepoint: %v)", err, rbErr)
		}
		_, _ = tx.ExecContext(ctx, "RELEASE SAVEPOINT "+upsertSavepoint)
		return err
	}

	_, err = tx.ExecContext(ctx, "RELEASE SAVEPOINT "+upsertSavepoint)
	return err
}

func (r *dealRepository) ListAll(ctx context.Context) ([]*domain.Deal, error) {
	query, args, err := squirrel.
		Select(dealsColumns).
		From(dealsTable).
		OrderBy("id ASC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	deals := make([]*domain.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear deal: %w", err)
		}
		deals = append(deals, deal)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return deals, nil
}

func (r *dealRepository) GetByID(ctx context.Context, id int64) (*domain.Deal, error) {
	query, args, err := squirrel.
		Select(dealsColumns).
		From(dealsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	deal, err := scanDeal(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar deal: %w", err)
	}

	return deal, nil
}

// UpdateFields altera apenas os campos presentes no patch. Retorna false se o deal não existe.
func (r *dealRepository) UpdateFields(ctx context.Context, id int64, patch domain.DealPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, ErrNoFieldsToUpdate
	}

	builder := squirrel.Update(dealsTable)
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.DateCreate != nil {
		builder = builder.Set("date_create", nullableDate(*patch.DateCreate))
	}
	if patch.DocumentsIDs != nil {
		builder = builder.Set("documents_ids", *patch.DocumentsIDs)
	}

	sqlQuery, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar deal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *dealRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	query, args, err := squirrel.
		Delete(dealsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execCount(ctx, query, args...)
}

func (r *dealRepository) Clear(ctx context.Context) (int64, error) {
	query, args, err := squirrel.
		Delete(dealsTable).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execCount(ctx, query, args...)
}

func (r *dealRepository) execCount(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (*domain.Deal, error) {
	deal := &domain.Deal{}
	var title, documentsIDs sql.NullString

	if err := row.Scan(
		&deal.ID,
		&title,
		dateColumn{dst: &deal.DateCreate},
		&documentsIDs,
		&deal.City,
	); err != nil {
		return nil, err
	}

	deal.Title = title.String
	deal.DocumentsIDs = documentsIDs.String

	return deal, nil
}

// dateColumn lê date_create tanto como texto quanto como time.Time,
// já que cada driver devolve colunas DATE de um jeito.
type dateColumn struct {
	dst *string
}

func (d dateColumn) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d.dst = ""
	case time.Time:
		*d.dst = v.Format(time.DateOnly)
	case string:
		*d.dst = trimToDay(v)
	case []byte:
		*d.dst = trimToDay(string(v))
	default:
		return fmt.Errorf("tipo inesperado para date_create: %T", src)
	}
	return nil
}

func trimToDay(value string) string {
	if i := strings.IndexAny(value, "T "); i >= 0 {
		return value[:i]
	}
	return value
}

func nullableDate(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func describeDBError(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Sprintf("%s (código: %s)", pqErr.Message, pqErr.Code)
	}
	return err.Error()
}
