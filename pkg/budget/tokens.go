package budget

import (
	"sync"

	"github.com/rs/zerolog/log"
	tiktoken "github.com/weaviate/tiktoken-go"
)

var (
	codecOnce sync.Once
	codec     *tiktoken.Tiktoken
)

func tokenCodec() *tiktoken.Tiktoken {
	codecOnce.Do(func() {
		c, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			log.Warn().Err(err).Msg("budget: tokenizer unavailable, falling back to byte heuristic")
			return
		}
		codec = c
	})
	return codec
}

// EstimateTokens counts tokens with the cl100k_base encoding. When the codec
// cannot be initialized the estimate degrades to the bytes/4 heuristic rather
// than failing the request.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	c := tokenCodec()
	if c == nil {
		return len(text) / 4
	}
	return len(c.Encode(text, nil, nil))
}
