package generator

import (
	"context"
	"crypto/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// Bank is the append-only history of texts previously produced for a topic
// set. Entries are never updated or deleted, which is what makes concurrent
// appends from independent build sessions safe without coordination.
type Bank interface {
	// Key returns the order- and case-insensitive identity of a topic set.
	Key(topics []string) string
	// RecentTexts returns up to limit original texts, most recent first.
	RecentTexts(ctx context.Context, topics []string, limit int) ([]string, error)
	// Seen reports which of the given normalized texts are already banked.
	Seen(ctx context.Context, topics []string, normalized []string) (map[string]bool, error)
	// Add appends the texts to the topic set's history.
	Add(ctx context.Context, topics []string, texts []string) error
}

// TopicKey builds the bank key: topics lower-cased, sorted, joined.
func TopicKey(topics []string) string {
	parts := make([]string, 0, len(topics))
	for _, t := range topics {
		parts = append(parts, strings.ToLower(strings.TrimSpace(t)))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// NormalizeText trims, lower-cases and collapses internal whitespace so that
// cosmetic rephrasings of the same question compare equal.
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// FilterDuplicates drops items whose normalized text is already in the bank
// for this topic set, and items that repeat an earlier item of the same
// batch. First occurrence wins; order is preserved.
func FilterDuplicates[T any](ctx context.Context, bank Bank, topics []string, items []T, textOf func(T) string) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}

	normalized := make([]string, len(items))
	for i, it := range items {
		normalized[i] = NormalizeText(textOf(it))
	}

	banked, err := bank.Seen(ctx, topics, normalized)
	if err != nil {
		return nil, err
	}

	inBatch := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for i, it := range items {
		n := normalized[i]
		if n == "" || banked[n] || inBatch[n] {
			continue
		}
		inBatch[n] = true
		out = append(out, it)
	}
	return out, nil
}

const nonceChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// MakeNonce returns a short random token embedded in prompts to discourage
// the generator from replaying cached output. It carries no stored meaning.
func MakeNonce() string {
	b := make([]byte, 8)
	rand.Read(b)
	for i := range b {
		b[i] = nonceChars[b[i]%byte(len(nonceChars))]
	}
	return string(b)
}

type bankEntry struct {
	normalized string
	original   string
	insertedAt time.Time
}

// MemoryBank is the in-process Bank implementation. Production uses the
// Postgres-backed repository; tests inject a fresh MemoryBank per case.
type MemoryBank struct {
	mu      sync.Mutex
	entries map[string][]bankEntry
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{entries: make(map[string][]bankEntry)}
}

func (b *MemoryBank) Key(topics []string) string { return TopicKey(topics) }

func (b *MemoryBank) RecentTexts(_ context.Context, topics []string, limit int) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	all := b.entries[TopicKey(topics)]
	out := make([]string, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i].original)
	}
	return out, nil
}

func (b *MemoryBank) Seen(_ context.Context, topics []string, normalized []string) (map[string]bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	banked := make(map[string]bool)
	for _, e := range b.entries[TopicKey(topics)] {
		banked[e.normalized] = true
	}

	out := make(map[string]bool, len(normalized))
	for _, n := range normalized {
		if banked[n] {
			out[n] = true
		}
	}
	return out, nil
}

func (b *MemoryBank) Add(_ context.Context, topics []string, texts []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := TopicKey(topics)
	now := time.Now()
	for _, t := range texts {
		n := NormalizeText(t)
		if n == "" {
			continue
		}
		b.entries[key] = append(b.entries[key], bankEntry{normalized: n, original: t, insertedAt: now})
	}
	return nil
}
