package extract

import (
	"strings"

	"github.com/piwi3910/profilecut/internal/model"
)

// ExtractPartsQty collects the quantity rows of every position group.
//
// A cell containing "Quantity" opens a block and, when it reads
// "Quantity: N Pcs" with N > 0, sets the block quantity. A blank marker
// cell closes the block. Inside a block every cell matching IsQuantityRow is
// recorded for the group's position together with the block quantity.
func ExtractPartsQty(groups []model.PositionGroup) map[string]model.PartsQty {
	rows := make(map[string]model.PartsQty)

	for _, grp := range groups {
		pos := PositionKey(grp.Name)
		inBlock := false
		quantity := 0.0

		for _, ac := range grp.Cells {
			text := ac.Cell.Value
			switch {
			case strings.Contains(text, quantityWord):
				inBlock = true
				if q, ok := BlockQuantity(text); ok && q > 0 {
					quantity = q
				}
			case inBlock && ac.Cell.IsBlankMarker():
				inBlock = false
			case inBlock && IsQuantityRow(text):
				pq := rows[pos]
				pq.Data = append(pq.Data, text)
				pq.Quantity = quantity
				rows[pos] = pq
			}
		}
	}

	return rows
}

// ExtractPartsNumbers collects the part numbers listed under each "Number"
// header cell, up to the next blank marker.
func ExtractPartsNumbers(groups []model.PositionGroup) map[string][]string {
	rows := make(map[string][]string)

	for _, grp := range groups {
		pos := PositionKey(grp.Name)
		inBlock := false

		for _, ac := range grp.Cells {
			text := ac.Cell.Value
			switch {
			case text == numberHeader:
				inBlock = true
			case inBlock && ac.Cell.IsBlankMarker():
				inBlock = false
			case inBlock && IsPartNumber(text):
				rows[pos] = append(rows[pos], text)
			}
		}
	}

	return rows
}

// ExtractPositionAndQty maps each position to the integer following
// "Quantity:" in its group. A later quantity cell overrides an earlier one.
func ExtractPositionAndQty(groups []model.PositionGroup) map[string]int {
	rows := make(map[string]int)

	for _, grp := range groups {
		pos := PositionKey(grp.Name)
		for _, ac := range grp.Cells {
			if !strings.Contains(ac.Cell.Value, quantityWord) {
				continue
			}
			if q, ok := PositionQuantity(ac.Cell.Value); ok && q > 0 {
				rows[pos] = q
			}
		}
	}

	return rows
}

// ExtractAssemblyListData runs all three assembly extractions.
func ExtractAssemblyListData(groups []model.PositionGroup) model.AssemblyListData {
	return model.AssemblyListData{
		PartsQty:     ExtractPartsQty(groups),
		PartsNumbers: ExtractPartsNumbers(groups),
		PositionQty:  ExtractPositionAndQty(groups),
	}
}
