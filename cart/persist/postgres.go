package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0nyxlabs/merchanding/cart"
)

// PostgresPersister keeps the serialized cart item table as one jsonb row per
// namespace key, for deployments that want the cart in the relational store.
type PostgresPersister struct {
	pool      *pgxpool.Pool
	namespace string
}

func NewPostgresPersister(pool *pgxpool.Pool, namespace string) *PostgresPersister {
	return &PostgresPersister{pool: pool, namespace: namespace}
}

func (p *PostgresPersister) Load(c context.Context) ([]cart.Item, error) {
	var data []byte
	err := p.pool.QueryRow(
		c,
		`SELECT items FROM storefront_carts WHERE namespace = $1`,
		p.namespace,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"failed finding cart namespace=%s in db with error=%w",
			p.namespace,
			err,
		)
	}

	items := []cart.Item{}
	err = json.Unmarshal(data, &items)
	if err != nil {
		return nil, fmt.Errorf(
			"failed unmarshaling cart namespace=%s with error=%w",
			p.namespace,
			err,
		)
	}
	return items, nil
}

func (p *PostgresPersister) Save(c context.Context, items []cart.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed marshaling cart namespace=%s with error=%w", p.namespace, err)
	}

	_, err = p.pool.Exec(
		c,
		`INSERT INTO storefront_carts (namespace, items, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (namespace)
		 DO UPDATE SET items = EXCLUDED.items, updated_at = now()`,
		p.namespace,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("failed upserting cart namespace=%s with error=%w", p.namespace, err)
	}
	return nil
}

func (p *PostgresPersister) Delete(c context.Context) error {
	_, err := p.pool.Exec(
		c,
		`DELETE FROM storefront_carts WHERE namespace = $1`,
		p.namespace,
	)
	if err != nil {
		return fmt.Errorf("failed deleting cart namespace=%s with error=%w", p.namespace, err)
	}
	return nil
}
