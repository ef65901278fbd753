package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"quizcraft/internal/domain"
)

const GlobalKeyPrefix = "quizcraft"

// GenerateCacheKey generates a cache key for a given service, object type,
// and identifier. If paramsKey are provided, they are joined by "_" and
// appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizRequestKey derives a stable cache key for one generation request:
// identical source text, difficulty, counts and type flags map to the same
// key so repeated requests can reuse a cached provider response.
func QuizRequestKey(req *domain.QuizRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%d|%t|%t",
		req.SourceText, req.Difficulty,
		req.MCQCount, req.TrueFalseCount,
		req.IncludeMCQ, req.IncludeTrueFalse)
	digest := hex.EncodeToString(h.Sum(nil))
	return GenerateCacheKey("quiz", "generation", digest)
}
