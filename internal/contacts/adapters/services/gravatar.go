package services

import (
	"crypto/md5" // #nosec G501 - gravatar addressing requires md5
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL возвращает URL аватара по умолчанию для нового гостя,
// производный от почты по схеме адресации gravatar.
func GravatarURL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized)) // #nosec G401
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=identicon", hex.EncodeToString(sum[:]), size)
}
