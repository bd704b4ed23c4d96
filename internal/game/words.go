package game

import (
	"embed"
	"io/fs"
	"math/rand"
	"strings"
	"time"
)

//go:embed words/*.txt
var wordsFS embed.FS

const vocabularyFile = "words/en.txt"

// DefaultVocabulary returns a fresh copy of the embedded word list.
func DefaultVocabulary() []string {
	words, err := loadWords(vocabularyFile)
	if err != nil {
		// The list is compiled into the binary; failing to read it is a build defect.
		panic("game: embedded vocabulary unreadable: " + err.Error())
	}
	return words
}

func loadWords(name string) ([]string, error) {
	b, err := fs.ReadFile(wordsFS, name)
	if err != nil {
		return nil, err
	}
	return normalizeWords(strings.Split(string(b), "\n")), nil
}

// normalizeWords trims and lowercases entries, dropping blanks.
func normalizeWords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		w := strings.TrimSpace(strings.ToLower(line))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// WordQueue hands out words from a fixed vocabulary in shuffled order and
// reshuffles the same vocabulary whenever it runs dry.
type WordQueue struct {
	vocab []string
	words []string
	last  string
	rng   *rand.Rand
}

// NewWordQueue builds a queue over vocab, falling back to the embedded list
// when vocab has no usable entries. A nil rng gets a time-seeded source.
func NewWordQueue(vocab []string, rng *rand.Rand) *WordQueue {
	words := normalizeWords(vocab)
	if len(words) == 0 {
		words = DefaultVocabulary()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	q := &WordQueue{vocab: words, rng: rng}
	q.refill()
	return q
}

// Next pops the front word, refilling first if the queue is empty.
func (q *WordQueue) Next() string {
	if len(q.words) == 0 {
		q.refill()
	}
	w := q.words[0]
	q.words = q.words[1:]
	q.last = w
	return w
}

// Len returns how many words remain before the next refill.
func (q *WordQueue) Len() int {
	return len(q.words)
}

// Vocabulary returns a copy of the fixed word list.
func (q *WordQueue) Vocabulary() []string {
	out := make([]string, len(q.vocab))
	copy(out, q.vocab)
	return out
}

func (q *WordQueue) refill() {
	words := make([]string, len(q.vocab))
	copy(words, q.vocab)
	q.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	// Keep the word just shown from coming straight back after a reshuffle.
	if q.last != "" && words[0] == q.last {
		for i := 1; i < len(words); i++ {
			if words[i] != q.last {
				words[0], words[i] = words[i], words[0]
				break
			}
		}
	}
	q.words = words
}
