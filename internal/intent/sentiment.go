package intent

import (
	"strings"

	"github.com/despacholegal-ai/intake-platform/internal/model"
)

var positiveWords = []string{"gracias", "excelente", "perfecto", "genial", "bueno", "me gusta", "satisfecho", "contento", "feliz", "agradecido"}
var negativeWords = []string{"mal", "pésimo", "terrible", "molesto", "enojado", "frustrado", "problema", "queja", "no funciona", "decepcionado"}

// Sentiment labels text by counting positive vs negative keywords.
func Sentiment(text string) model.Sentiment {
	lower := strings.ToLower(text)

	positive := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	negative := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return model.SentimentPositive
	case negative > positive:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}
