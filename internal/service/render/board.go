package render

import "sync"

// Container receives committed cards in display order.
type Container interface {
	Clear()
	Append(cards ...*Card)
}

// Board is the in-memory Container used per chat room.
type Board struct {
	mu    sync.RWMutex
	cards []*Card
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Clear() {
	b.mu.Lock()
	b.cards = nil
	b.mu.Unlock()
}

func (b *Board) Append(cards ...*Card) {
	b.mu.Lock()
	b.cards = append(b.cards, cards...)
	b.mu.Unlock()
}

func (b *Board) Cards() []*Card {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// Find returns the card for an attraction name in the current batch.
func (b *Board) Find(name string) (*Card, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, c := range b.cards {
		if c.Attraction.Name == name {
			return c, true
		}
	}
	return nil, false
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.cards)
}
