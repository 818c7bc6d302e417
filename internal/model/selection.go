package model

// SymbolSelection is the instrument currently selected across views.
type SymbolSelection struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
