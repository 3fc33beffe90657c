package app

import (
	"card-listing/internal/card"
	"card-listing/internal/specifics"
	"card-listing/internal/title"
)

// Payload is the listing document handed to the upload step.
type Payload struct {
	CategoryID    string                  `json:"category_id"`
	Title         string                  `json:"title"`
	ItemSpecifics specifics.ItemSpecifics `json:"item_specifics"`
	Debug         Debug                   `json:"_debug"`
}

type Debug struct {
	Input                    card.Card     `json:"input"`
	DroppedTitleGroups       []title.Group `json:"dropped_title_groups"`
	UnknownItemSpecificNames []string      `json:"unknown_item_specific_names"`
}

func BuildPayload(categoryID string, c card.Card, tr title.Result, item specifics.ItemSpecifics, unknown []string) Payload {
	if c == nil {
		c = card.Card{}
	}
	dropped := tr.Dropped
	if dropped == nil {
		dropped = []title.Group{}
	}
	if item == nil {
		item = specifics.ItemSpecifics{}
	}
	if unknown == nil {
		unknown = []string{}
	}
	return Payload{
		CategoryID:    categoryID,
		Title:         tr.Title,
		ItemSpecifics: item,
		Debug: Debug{
			Input:                    c,
			DroppedTitleGroups:       dropped,
			UnknownItemSpecificNames: unknown,
		},
	}
}
