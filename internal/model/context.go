package model

import "time"

// Sentiment is a coarse per-message sentiment label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ConversationContext is the per-user short-term memory that is not tied
// to an appointment: remembered name, running sentiment, discussed topics.
// It is created lazily on first message and survives appointment sessions.
type ConversationContext struct {
	UserName          string
	PreferredLanguage string
	TopicsDiscussed   []string
	UserSentiment     Sentiment
	ConversationStyle string
	LastIntent        string
	StartedAt         time.Time
	InteractionCount  int
}

// NewConversationContext returns a fresh context with neutral defaults.
func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		PreferredLanguage: "es",
		UserSentiment:     SentimentNeutral,
		ConversationStyle: "formal",
		StartedAt:         time.Now(),
	}
}

// RecordTopic appends an intent label to the topic history, deduplicated.
func (c *ConversationContext) RecordTopic(intent string) {
	for _, t := range c.TopicsDiscussed {
		if t == intent {
			return
		}
	}
	c.TopicsDiscussed = append(c.TopicsDiscussed, intent)
}

// LastTopic returns the most recently recorded topic, or "".
func (c *ConversationContext) LastTopic() string {
	if len(c.TopicsDiscussed) == 0 {
		return ""
	}
	return c.TopicsDiscussed[len(c.TopicsDiscussed)-1]
}
