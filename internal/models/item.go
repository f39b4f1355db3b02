package models

// Item is a unit of work: an image plus the tweet text and the model's reasoning about it.
type Item struct {
	ImageName    string `db:"image_name" json:"image_name"`
	TweetText    string `db:"tweet_text" json:"tweet_text"`
	LLMReasoning string `db:"llm_reasoning" json:"llm_reasoning"`
}
