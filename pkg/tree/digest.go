package tree

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"nodeforest/pkg/models"
)

// Digest returns a blake2b-256 digest of the forest's JSON encoding. Two
// forests with equal digests are structurally equal.
func Digest(forest []*models.Node) (string, error) {
	if err := Validate(forest); err != nil {
		return "", err
	}
	data, err := json.Marshal(forest)
	if err != nil {
		return "", fmt.Errorf("failed to encode forest: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
