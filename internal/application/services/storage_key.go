package services

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxExtLen = 16

var tokenEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// KeyGenerator builds "{partition}/{unix-millis}-{token}.{ext}" keys. Safe for concurrent use.
type KeyGenerator struct {
	entropy io.Reader
	now     func() time.Time
	last    atomic.Int64
}

// NewKeyGenerator uses crypto/rand when entropy is nil.
func NewKeyGenerator(entropy io.Reader) *KeyGenerator {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &KeyGenerator{
		entropy: entropy,
		now:     time.Now,
	}
}

func (g *KeyGenerator) Generate(partition, fileName string) (string, error) {
	id, err := uuid.NewRandomFromReader(g.entropy)
	if err != nil {
		return "", fmt.Errorf("read key entropy: %w", err)
	}

	key := fmt.Sprintf("%s/%d-%s", partition, g.timestamp(), tokenEncoding.EncodeToString(id[:]))
	if ext := keyExtension(fileName); ext != "" {
		key += "." + ext
	}

	return key, nil
}

// timestamp never goes backwards even if the wall clock does.
func (g *KeyGenerator) timestamp() int64 {
	now := g.now().UnixMilli()
	for {
		last := g.last.Load()
		if now <= last {
			return last
		}
		if g.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

// keyExtension takes the text after the last dot and folds it to [a-z0-9].
func keyExtension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}

	t := transform.Chain(norm.NFKD, transform.RemoveFunc(isMn), norm.NFC)
	ext, _, err := transform.String(t, fileName[idx+1:])
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToLower(ext) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == maxExtLen {
			break
		}
	}

	return b.String()
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
