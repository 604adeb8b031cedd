package dto

// WordEntry is one ingested word, used by both the single-word and bulk
// endpoints. Categories holds raw folder names resolved (and created on
// demand) during ingestion.
type WordEntry struct {
	L1Word     string   `json:"l1Word"`
	L2Word     string   `json:"l2Word"`
	Example    string   `json:"example"`
	Categories []string `json:"categories"`
}

type BulkWordsRequest struct {
	Words []WordEntry `json:"words"`
}

type WordResponse struct {
	ID      uint    `json:"id"`
	L1Word  string  `json:"l1Word"`
	L2Word  string  `json:"l2Word"`
	Example *string `json:"example"`
}
