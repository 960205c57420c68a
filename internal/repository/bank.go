package repository

import (
	"context"
	"fmt"

	"github.com/abhishek622/mockmate/internal/cache"
	"github.com/abhishek622/mockmate/internal/generator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BankRepository is the durable question bank: an append-only table keyed by
// topic set, with a redis read-through cache in front of the most-recent-N
// lookup. Rows are never updated or deleted.
type BankRepository struct {
	db    *pgxpool.Pool
	cache *cache.RecentTexts
}

func NewBankRepository(db *pgxpool.Pool, recent *cache.RecentTexts) *BankRepository {
	return &BankRepository{db: db, cache: recent}
}

func (b *BankRepository) Key(topics []string) string {
	return generator.TopicKey(topics)
}

func (b *BankRepository) RecentTexts(ctx context.Context, topics []string, limit int) ([]string, error) {
	key := generator.TopicKey(topics)
	if texts, ok := b.cache.Get(ctx, key); ok {
		if len(texts) > limit {
			texts = texts[:limit]
		}
		return texts, nil
	}

	const q = `
SELECT original_text FROM question_bank
WHERE topic_key = $1
ORDER BY inserted_at DESC, bank_id DESC
LIMIT $2
`
	rows, err := b.db.Query(ctx, q, key, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent bank texts: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan bank text: %w", err)
		}
		out = append(out, text)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	b.cache.Set(ctx, key, out)
	return out, nil
}

func (b *BankRepository) Seen(ctx context.Context, topics []string, normalized []string) (map[string]bool, error) {
	out := make(map[string]bool, len(normalized))
	if len(normalized) == 0 {
		return out, nil
	}

	const q = `
SELECT normalized_text FROM question_bank
WHERE topic_key = $1 AND normalized_text = ANY($2)
`
	rows, err := b.db.Query(ctx, q, generator.TopicKey(topics), normalized)
	if err != nil {
		return nil, fmt.Errorf("query bank membership: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan bank membership: %w", err)
		}
		out[text] = true
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (b *BankRepository) Add(ctx context.Context, topics []string, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	key := generator.TopicKey(topics)

	// ON CONFLICT DO NOTHING absorbs the race where two concurrent builds
	// for the same topic set accept the same text; the bank's uniqueness
	// invariant holds either way.
	batch := &pgx.Batch{}
	const q = `
INSERT INTO question_bank (topic_key, normalized_text, original_text)
VALUES ($1, $2, $3)
ON CONFLICT (topic_key, normalized_text) DO NOTHING
`
	queued := 0
	for _, text := range texts {
		n := generator.NormalizeText(text)
		if n == "" {
			continue
		}
		batch.Queue(q, key, n, text)
		queued++
	}

	br := b.db.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch insert bank text %d: %w", i, err)
		}
	}

	b.cache.Invalidate(ctx, key)
	return nil
}
