package common

const (
	RedisStreamSentimentAnalysisRequest = "sentiment.analysis.request"

	RedisStreamGroup    = "analyzer-group"
	RedisStreamConsumer = "analyzer-consumer"

	// RedisStreamPayloadField is the stream entry field that carries the JSON payload.
	RedisStreamPayloadField = "payload"
)

const (
	SourceLabelFMPArticles   = "FMP Articles"
	SourceLabelGoogleNewsRSS = "Google News RSS"
)
