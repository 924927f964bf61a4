// Package parser turns row-grouped cutting tables into per-profile cutting
// data. A profile header row ("Cortizo 101045 4 Pcs @ 6,500 mm Colour: ...")
// is followed by instruction rows ("2 1,250 101") until the next header.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/profilecut/internal/model"
)

var (
	frtRe     = regexp.MustCompile(`(?m)^FRT\s+(ZZZCONS\d+)`)
	cortizoRe = regexp.MustCompile(`Cortizo (\d+)`)
	pcsRe     = regexp.MustCompile(`(\d+) Pcs`)
	lengthRe  = regexp.MustCompile(`@ ([\d,]+) mm`)
	colourRe  = regexp.MustCompile(`Colour: (.+)`)

	instructionRe = regexp.MustCompile(`^(\d+)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s+(\d{3})$`)
	powderCodeRe  = regexp.MustCompile(`PE(\d+)TD`)
)

// Header words. A row containing one of them, and more than just the word,
// starts a new profile.
const (
	cortizoWord = "Cortizo"
	frtWord     = "FRT"
)

// Colour finishes with a dedicated code.
const (
	special2Prefix = "Special 2 Powder Coating"
	special3Prefix = "Special 3 Powder Coating"
	sublimareCode  = "Sublimare"
)

// IsHeaderRow reports whether a merged row starts a new profile.
func IsHeaderRow(merged string) bool {
	isCortizo := strings.Contains(merged, cortizoWord) && merged != cortizoWord
	isFrt := strings.Contains(merged, frtWord) && merged != frtWord
	return isCortizo || isFrt
}

// PartNumber returns the FRT code of a header if present, else its Cortizo
// number.
func PartNumber(header string) (string, bool) {
	if m := frtRe.FindStringSubmatch(header); m != nil {
		return m[1], true
	}
	if m := cortizoRe.FindStringSubmatch(header); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractProfileInfo parses a merged header row. It fails unless part
// number, a non-zero piece count, a non-zero length and a colour are all
// present.
func ExtractProfileInfo(header string) (model.ProfileHeaderInfo, bool) {
	partNumber, ok := PartNumber(header)
	if !ok {
		return model.ProfileHeaderInfo{}, false
	}

	var pcs int
	if m := pcsRe.FindStringSubmatch(header); m != nil {
		pcs, _ = strconv.Atoi(m[1])
	}

	var length float64
	if m := lengthRe.FindStringSubmatch(header); m != nil {
		length, _ = strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	}

	var colour string
	if m := colourRe.FindStringSubmatch(header); m != nil {
		colour = strings.TrimSpace(m[1])
	}

	if pcs == 0 || length == 0 || colour == "" {
		return model.ProfileHeaderInfo{}, false
	}

	return model.ProfileHeaderInfo{
		PartNumber:   partNumber,
		Pcs:          pcs,
		LengthPerPcs: length,
		Color:        colour,
	}, true
}

// ColorCode maps a colour text to the finish code printed on the report.
func ColorCode(colour string) string {
	switch {
	case strings.HasPrefix(colour, special2Prefix):
		if m := powderCodeRe.FindStringSubmatch(colour); m != nil {
			return "T" + m[1] + "T" + m[1]
		}
	case strings.HasPrefix(colour, special3Prefix):
		return sublimareCode
	}
	return model.NoColor
}

// ParseInstruction parses a "qty length position" row.
func ParseInstruction(merged string) (model.CuttingInstruction, bool) {
	m := instructionRe.FindStringSubmatch(merged)
	if m == nil {
		return model.CuttingInstruction{}, false
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil {
		return model.CuttingInstruction{}, false
	}
	length, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return model.CuttingInstruction{}, false
	}
	return model.CuttingInstruction{Qty: qty, Length: length, Position: m[3]}, true
}
