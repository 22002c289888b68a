package security

import (
	"fmt"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
	"golang.org/x/crypto/bcrypt"
)

// BcryptPinHasher implements staff.PinHasher with bcrypt.
type BcryptPinHasher struct {
	cost int
}

// NewBcryptPinHasher uses bcrypt.DefaultCost when cost is out of range.
func NewBcryptPinHasher(cost int) staff.PinHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPinHasher{cost: cost}
}

func (h *BcryptPinHasher) Hash(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptPinHasher) Compare(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
