package services

import (
	"crypto/md5"
	"encoding/hex"
)

const productIDLength = 10

// ProductID maps a title to a stable short identifier: the first ten hex
// characters of its MD5 digest. Collisions are not guarded against.
func ProductID(title string) string {
	sum := md5.Sum([]byte(title))
	return hex.EncodeToString(sum[:])[:productIDLength]
}
