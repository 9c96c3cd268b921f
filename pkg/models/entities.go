package models

import "fmt"

// Entity is a span of the input text tagged with a label from the model's tag set.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// String formats the entity the way it is shown on the page and in logs.
func (e Entity) String() string {
	return fmt.Sprintf("- %s (%s)", e.Text, e.Label)
}

// The types below are the wire format of the NLP server's /entities endpoint. The server groups
// every occurrence of an entity under one record, so callers must flatten Matches to recover
// document order.

type EntityMatch struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type EntityRecord struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	Matches []EntityMatch `json:"matches"`
}

type EntityRequestRecord struct {
	UUID     string `json:"uuid"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

type EntityResponseRecord struct {
	UUID     string         `json:"uuid"`
	Entities []EntityRecord `json:"entities"`
}

type EntityRequest struct {
	Texts []EntityRequestRecord `json:"texts"`
}

type EntityResponse struct {
	Texts []EntityResponseRecord `json:"texts"`
}
