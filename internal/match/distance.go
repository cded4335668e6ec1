package match

const wordBits = 64

// pattern is a lower-cased query compiled for bit-parallel approximate
// substring search (Myers' algorithm, split into 64-bit blocks as in Hyyrö's
// formulation). Scoring one text costs O(len(text) * ceil(len(query)/64)).
//
// A pattern keeps scratch state and is not safe for concurrent use.
type pattern struct {
	size    int
	words   int
	ascii   []uint64 // 128*words match masks, one block row per ASCII rune
	other   map[rune][]uint64
	none    []uint64
	counts  map[rune]int
	lastBit uint64

	pv, mv []uint64
	seen   map[rune]int
}

func compile(runes []rune) *pattern {
	words := (len(runes) + wordBits - 1) / wordBits
	p := &pattern{
		size:   len(runes),
		words:  words,
		ascii:  make([]uint64, 128*words),
		other:  make(map[rune][]uint64),
		none:   make([]uint64, words),
		counts: make(map[rune]int),
		pv:     make([]uint64, words),
		mv:     make([]uint64, words),
		seen:   make(map[rune]int),
	}
	for i, r := range runes {
		w, bit := i/wordBits, uint64(1)<<uint(i%wordBits)
		if r >= 0 && r < 128 {
			p.ascii[int(r)*words+w] |= bit
		} else {
			masks, ok := p.other[r]
			if !ok {
				masks = make([]uint64, words)
				p.other[r] = masks
			}
			masks[w] |= bit
		}
		p.counts[r]++
	}
	if len(runes) > 0 {
		p.lastBit = uint64(1) << uint((len(runes)-1)%wordBits)
	}
	return p
}

func (p *pattern) eq(r rune) []uint64 {
	if r >= 0 && r < 128 {
		return p.ascii[int(r)*p.words : int(r+1)*p.words]
	}
	if masks, ok := p.other[r]; ok {
		return masks
	}
	return p.none
}

// lowerBound counts pattern runes the text cannot supply. Every edit fixes at
// most one of them, so it never exceeds the substring distance.
func (p *pattern) lowerBound(text string) int {
	clear(p.seen)
	for _, r := range text {
		if _, ok := p.counts[r]; ok {
			p.seen[r]++
		}
	}
	lb := 0
	for r, n := range p.counts {
		if have := p.seen[r]; have < n {
			lb += n - have
		}
	}
	return lb
}

// distance returns the minimum edit distance between the pattern and any
// substring of text (Sellers' problem): deletions before and after the matched
// region are free, so an exact substring scores 0. Any result above k only
// means "more than k"; texts that provably exceed k skip the scan entirely.
func (p *pattern) distance(text string, k int) int {
	if p.size == 0 {
		return 0
	}
	if lb := p.lowerBound(text); lb > k {
		return lb
	}

	for w := range p.pv {
		p.pv[w] = ^uint64(0)
		p.mv[w] = 0
	}
	score, best := p.size, p.size
	last := p.words - 1

	for _, r := range text {
		eq := p.eq(r)
		hin := 0 // row 0 is free in substring search
		for w := 0; w <= last; w++ {
			e, pv, mv := eq[w], p.pv[w], p.mv[w]

			xv := e | mv
			if hin < 0 {
				e |= 1
			}
			xh := (((e & pv) + pv) ^ pv) | e
			ph := mv | ^(xh | pv)
			mh := pv & xh

			high := uint64(1) << (wordBits - 1)
			if w == last {
				high = p.lastBit
			}
			hout := 0
			if ph&high != 0 {
				hout = 1
			} else if mh&high != 0 {
				hout = -1
			}

			ph <<= 1
			mh <<= 1
			if hin < 0 {
				mh |= 1
			} else if hin > 0 {
				ph |= 1
			}
			p.pv[w] = mh | ^(xv | ph)
			p.mv[w] = ph & xv
			hin = hout
		}

		score += hin
		if score < best {
			best = score
			if best == 0 {
				return 0
			}
		}
	}
	return best
}
