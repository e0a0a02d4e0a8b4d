package tetris

import "math/rand"

// Bag is the seven-bag randomizer. Between refills it holds at most one of each
// kind; when it empties it is refilled with all seven and reshuffled. Two draws
// of the same kind are therefore never more than 12 draws apart.
type Bag struct {
	rng   *rand.Rand
	items []Kind
}

// NewBag creates a bag drawing from rng. The bag starts full.
func NewBag(rng *rand.Rand) *Bag {
	b := &Bag{rng: rng, items: make([]Kind, 0, kindCount)}
	b.refill()
	return b
}

// refill puts one of each kind back and shuffles.
func (b *Bag) refill() {
	b.items = append(b.items[:0], Kinds()...)
	b.rng.Shuffle(len(b.items), func(i, j int) {
		b.items[i], b.items[j] = b.items[j], b.items[i]
	})
}

// Next draws one kind, refilling first if the bag is empty.
func (b *Bag) Next() Kind {
	if len(b.items) == 0 {
		b.refill()
	}
	last := len(b.items) - 1
	k := b.items[last]
	b.items = b.items[:last]
	return k
}

// Len returns how many kinds remain before the next refill.
func (b *Bag) Len() int {
	return len(b.items)
}
