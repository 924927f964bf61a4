package parser

import (
	"strings"

	"github.com/piwi3910/profilecut/internal/model"
)

// state is the scan state threaded through the rows of one table.
type state struct {
	current *model.CuttingRowData
	done    []model.CuttingRowData
}

// step consumes one merged row. A header closes the open profile and opens
// the next; an instruction row is appended to the open profile; anything
// else is skipped.
func step(s state, table string, row model.Row) (state, error) {
	merged := strings.Join(row.Cells, " ")

	if IsHeaderRow(merged) {
		info, ok := ExtractProfileInfo(merged)
		if !ok {
			return s, &model.Error{
				Kind:   model.ErrMissingProfileInfo,
				Table:  table,
				Detail: merged,
			}
		}
		s = closeProfile(s)
		s.current = &model.CuttingRowData{
			PartNumber:   info.PartNumber,
			Pcs:          info.Pcs,
			LengthPerPcs: info.LengthPerPcs,
			TotalLength:  float64(info.Pcs) * info.LengthPerPcs,
			ColorInfo:    ColorCode(info.Color),
			Instructions: []model.CuttingInstruction{},
		}
		return s, nil
	}

	if s.current == nil {
		return s, nil
	}
	if ci, ok := ParseInstruction(merged); ok {
		s.current.Instructions = append(s.current.Instructions, ci)
	}
	return s, nil
}

func closeProfile(s state) state {
	if s.current != nil {
		s.done = append(s.done, *s.current)
		s.current = nil
	}
	return s
}

// ParseTable parses one cutting table. If any header row lacks profile
// info the whole table fails and no data is returned for it.
func ParseTable(table model.CuttingTable) ([]model.CuttingRowData, error) {
	var (
		s   state
		err error
	)
	for _, row := range table.Rows {
		if s, err = step(s, table.Name, row); err != nil {
			return nil, err
		}
	}
	return closeProfile(s).done, nil
}

// Parse parses tables one after the other, in order. The first failing
// table aborts the parse.
func Parse(tables []model.CuttingTable) ([]model.CuttingRowData, error) {
	if len(tables) == 0 {
		return nil, model.NewError(model.ErrEmptyInput, "", "no cutting tables")
	}

	var out []model.CuttingRowData
	for _, t := range tables {
		data, err := ParseTable(t)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
	}
	return out, nil
}
