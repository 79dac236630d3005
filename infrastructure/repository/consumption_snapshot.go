package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/pos-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

const consumptionSnapshotsTable = "consumption_snapshots cs"

type ConsumptionSnapshotRepository interface {
	GetByDate(date time.Time) (*domain.ConsumptionSnapshotEntry, error)
	GetLatest() (*domain.ConsumptionSnapshotEntry, error)
	SaveOrUpdate(entry *domain.ConsumptionSnapshotEntry) error
	DeleteOlderThan(days int) (int64, error)
}

type consumptionSnapshotRepository struct {
	conn *postgres.Connection
}

func NewConsumptionSnapshotRepository(conn *postgres.Connection) ConsumptionSnapshotRepository {
	return &consumptionSnapshotRepository{
		conn: conn,
	}
}

func (r *consumptionSnapshotRepository) GetByDate(date time.Time) (*domain.ConsumptionSnapshotEntry, error) {
	query, args, err := squirrel.
		Select("cs.id, cs.date, cs.analyses, cs.created_at, cs.updated_at").
		From(consumptionSnapshotsTable).
		Where(squirrel.Eq{"cs.date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	entry, err := scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return entry, nil
}

func (r *consumptionSnapshotRepository) GetLatest() (*domain.ConsumptionSnapshotEntry, error) {
	query, args, err := squirrel.
		Select("cs.id, cs.date, cs.analyses, cs.created_at, cs.updated_at").
		From(consumptionSnapshotsTable).
		OrderBy("cs.date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	entry, err := scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return entry, nil
}

func (r *consumptionSnapshotRepository) SaveOrUpdate(entry *domain.ConsumptionSnapshotEntry) error {
	var analysesJSON []byte
	var err error

	if entry.Analyses != nil {
		analysesJSON, err = json.Marshal(entry.Analyses)
		if err != nil {
			return fmt.Errorf("erro ao serializar análises para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("consumption_snapshots").
		Columns("date", "analyses").
		Values(
			entry.Date.Format(time.DateOnly),
			analysesJSON,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				analyses = EXCLUDED.analyses,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *consumptionSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("consumption_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*domain.ConsumptionSnapshotEntry, error) {
	var entry domain.ConsumptionSnapshotEntry
	var analysesJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.Date,
		&analysesJSON,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(analysesJSON) > 0 {
		if err := json.Unmarshal(analysesJSON, &entry.Analyses); err != nil {
			return nil, fmt.Errorf("erro ao desserializar análises: %w", err)
		}
	}

	return &entry, nil
}
