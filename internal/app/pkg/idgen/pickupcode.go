package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// 取件码字符集：去掉了易混淆的 I/O
const pickupLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewPickupCode 生成取件码：2位大写字母 + 4位数字，如 AK3507
// 线下核验凭证，创建后不可变
func NewPickupCode() (string, error) {
	letters := make([]byte, 2)
	for i := range letters {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pickupLetters))))
		if err != nil {
			return "", fmt.Errorf("generate pickup code failed: %w", err)
		}
		letters[i] = pickupLetters[n.Int64()]
	}

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generate pickup code failed: %w", err)
	}

	return fmt.Sprintf("%s%04d", letters, n.Int64()), nil
}
