package bookings

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

const randomSuffixBytes = 3

// IdempotencySeed данные, из которых выводится идентификатор повторяемого запроса
type IdempotencySeed struct {
	MerchantGUID string
	ServiceID    string
	Start        time.Time
	PartySize    int
	Email        string
	Key          string
}

// IdempotentID возвращает IDEMP_ + первые 20 hex-символов sha256 от
// merchant|service|start|party|lower(email)|key
func IdempotentID(seed IdempotencySeed) string {
	material := strings.Join([]string{
		seed.MerchantGUID,
		seed.ServiceID,
		seed.Start.Format(domain.SeedFormat),
		strconv.Itoa(seed.PartySize),
		strings.ToLower(seed.Email),
		seed.Key,
	}, "|")

	sum := sha256.Sum256([]byte(material))
	return domain.IdempotentIDPrefix + hex.EncodeToString(sum[:])[:domain.IdempotentIDHashLength]
}

// RandomIDGenerator выдает идентификаторы вида BK_<YYYYMMDD>_<HHMM>_<6 hex>
type RandomIDGenerator struct {
	rand io.Reader
}

// NewRandomIDGenerator создает генератор на crypto/rand
func NewRandomIDGenerator() *RandomIDGenerator {
	return &RandomIDGenerator{rand: rand.Reader}
}

// NewID строит идентификатор из времени начала слота и случайного суффикса
func (g *RandomIDGenerator) NewID(start time.Time) (string, error) {
	buf := make([]byte, randomSuffixBytes)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIDGeneration, err)
	}
	return domain.RandomIDPrefix + start.Format(domain.RandomIDTimeFormat) + "_" + hex.EncodeToString(buf), nil
}
