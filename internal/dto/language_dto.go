package dto

type ActivateLanguageRequest struct {
	LangOne string `json:"langOne"`
	LangTwo string `json:"langTwo"`
}
