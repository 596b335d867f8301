package agent

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/tripsmith/internal/core"
)

// TokenCounter sizes a prompt stack for diagnostics.
type TokenCounter interface {
	Count(msgs []core.Message) (int, error)
}

// perMessageOverhead approximates the role and separator tokens chat formats add per message.
const perMessageOverhead = 4

type TiktokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

func NewTiktokenCounter() *TiktokenCounter {
	return &TiktokenCounter{}
}

// Count loads cl100k_base on first use; a load failure is returned on every call.
func (c *TiktokenCounter) Count(msgs []core.Message) (int, error) {
	c.once.Do(func() {
		c.enc, c.err = tiktoken.GetEncoding("cl100k_base")
	})
	if c.err != nil {
		return 0, fmt.Errorf("load tokenizer: %w", c.err)
	}

	total := 0
	for _, m := range msgs {
		total += perMessageOverhead + len(c.enc.Encode(m.Content, nil, nil))
	}
	return total, nil
}
