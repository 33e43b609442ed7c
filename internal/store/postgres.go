package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"phonenix/internal/agentconfig"
)

const configsTable = "agent_configs"

// Schema creates the table used by Postgres.
const Schema = `CREATE TABLE IF NOT EXISTS agent_configs (
	id          UUID PRIMARY KEY,
	agent_name  TEXT NOT NULL,
	industry    TEXT NOT NULL DEFAULT '',
	config      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Postgres stores the dictionary form of each config as JSONB.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects with the lib/pq driver and makes sure the table exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create %s: %w", configsTable, err)
	}
	return NewPostgres(db), nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Save(ctx context.Context, cfg *agentconfig.AgentConfig) (string, error) {
	id := uuid.NewString()
	query, args, err := insertQuery(id, cfg)
	if err != nil {
		return "", err
	}
	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert agent config: %w", err)
	}
	return id, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*agentconfig.AgentConfig, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	query, args, err := selectQuery(id)
	if err != nil {
		return nil, err
	}

	var raw []byte
	if err := p.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select agent config: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode agent config %s: %w", id, err)
	}
	return agentconfig.AgentConfigFromMap(m), nil
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	query, args, err := deleteQuery(id)
	if err != nil {
		return err
	}
	res, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete agent config: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func insertQuery(id string, cfg *agentconfig.AgentConfig) (string, []any, error) {
	data, err := json.Marshal(cfg.ToMap())
	if err != nil {
		return "", nil, fmt.Errorf("encode agent config: %w", err)
	}
	return psql.Insert(configsTable).
		Columns("id", "agent_name", "industry", "config").
		Values(id, cfg.AgentName, cfg.Industry, string(data)).
		ToSql()
}

func selectQuery(id string) (string, []any, error) {
	return psql.Select("config").
		From(configsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func deleteQuery(id string) (string, []any, error) {
	return psql.Delete(configsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}
