package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// cuttingCellRe matches addresses in the columns the cut optimisation
	// export writes its cutting table to.
	cuttingCellRe = regexp.MustCompile(`^([BDJR]+)(\d+)$`)
	rowNumberRe   = regexp.MustCompile(`(\d+)$`)

	positionMarkerRe = regexp.MustCompile(`^Position: \d{3}$`)
	blockQuantityRe  = regexp.MustCompile(`Quantity:\s*([\d,]+(?:\.\d+)?)\s*Pcs`)
	positionQtyRe    = regexp.MustCompile(`Quantity:\s*(\d+)`)

	groupedNumberRe  = regexp.MustCompile(`^(?:[1-9]\d{0,2}(?:,\d{3})*|\d{1,2})(\.\d+)?$`)
	multiplicationRe = regexp.MustCompile(`\d{1,3}(,\d{3})*\*\d{1,3}`)
	unitRe           = regexp.MustCompile(`pc|mm|cm|m`)

	partNumberRe = regexp.MustCompile(`^\d{6}$|^[A-Za-z]{7}\d{4}$|[zZ]{1}\d{3}`)
)

const (
	quantityWord   = "Quantity"
	numberHeader   = "Number"
	positionPrefix = "Position:"
)

// RowNumber returns the trailing row number of a cutting table address.
// Addresses outside the cutting columns, and row 0, are rejected.
func RowNumber(addr string) (int, bool) {
	if !cuttingCellRe.MatchString(addr) {
		return 0, false
	}
	m := rowNumberRe.FindStringSubmatch(addr)
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// IsPositionMarker reports whether text opens an assembly group.
func IsPositionMarker(text string) bool {
	return positionMarkerRe.MatchString(text)
}

// PositionKey turns a marker text ("Position: 101") into its position ("101").
func PositionKey(marker string) string {
	return strings.TrimSpace(strings.Replace(marker, positionPrefix, "", 1))
}

// BlockQuantity parses the "Quantity: N Pcs" text that opens a quantity block.
func BlockQuantity(text string) (float64, bool) {
	m := blockQuantityRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	q, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return q, true
}

// PositionQuantity returns the first integer following "Quantity:".
func PositionQuantity(text string) (int, bool) {
	m := positionQtyRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	q, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return q, true
}

// IsQuantityRow reports whether text is a "qty total unit" triple, e.g.
// "2 1,250 mm" or "4 (2*2) pc". All three tokens are required.
func IsQuantityRow(text string) bool {
	tokens := strings.Split(text, " ")
	if len(tokens) < 3 {
		return false
	}
	qty, total, unit := tokens[0], tokens[1], tokens[2]
	if qty == "" || total == "" || unit == "" {
		return false
	}

	total = strings.Replace(total, "(", "", 1)
	total = strings.Replace(total, ")", "", 1)

	if !groupedNumberRe.MatchString(qty) {
		return false
	}
	if !groupedNumberRe.MatchString(total) && !multiplicationRe.MatchString(total) {
		return false
	}
	return unitRe.MatchString(unit)
}

// IsPartNumber reports whether text looks like an accessory part number.
func IsPartNumber(text string) bool {
	return partNumberRe.MatchString(text)
}
