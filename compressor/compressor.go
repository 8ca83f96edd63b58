// Package compressor provides two-dimensional table compression for the
// generated tables. The algorithms preserve lookup results exactly; only the
// storage layout changes.
package compressor

import (
	"encoding/binary"
	"fmt"
	"sort"
)

type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("column count must be >=1: %v", colCount)
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length must be a multiple of the column count; entries length: %v, column count: %v", len(entries), colCount)
	}
	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

// UniqueEntriesTable stores each distinct row once. Rows of the original
// table redirect to their distinct representative through RowNums.
type UniqueEntriesTable struct {
	UniqueEntries    []int
	RowNums          []int
	OriginalRowCount int
	OriginalColCount int
}

// GenUniqueEntriesTable deduplicates the rows of orig. The first occurrence
// of each distinct row decides its position, so the output is deterministic.
func GenUniqueEntriesTable(orig *OriginalTable) (*UniqueEntriesTable, error) {
	var uniqueEntries []int
	rowNums := make([]int, orig.rowCount)
	fp2RowNum := map[string]int{}
	for row := 0; row < orig.rowCount; row++ {
		start := row * orig.colCount
		rowEntries := orig.entries[start : start+orig.colCount]

		var fp string
		{
			b := make([]byte, 0, orig.colCount*binary.MaxVarintLen64)
			for _, v := range rowEntries {
				b = binary.AppendVarint(b, int64(v))
			}
			fp = string(b)
		}

		rowNum, ok := fp2RowNum[fp]
		if !ok {
			rowNum = len(fp2RowNum)
			fp2RowNum[fp] = rowNum
			uniqueEntries = append(uniqueEntries, rowEntries...)
		}
		rowNums[row] = rowNum
	}

	return &UniqueEntriesTable{
		UniqueEntries:    uniqueEntries,
		RowNums:          rowNums,
		OriginalRowCount: orig.rowCount,
		OriginalColCount: orig.colCount,
	}, nil
}

func (tab *UniqueEntriesTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return tab.UniqueEntries[tab.RowNums[row]*tab.OriginalColCount+col], nil
}

func (tab *UniqueEntriesTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

// unboundedRow marks a slot of Bounds that no row occupies.
const unboundedRow = -1

// RowDisplacementTable overlays the rows of the original table into one
// array, sliding each row until its non-empty entries fall on free slots.
// Bounds records which row owns each slot, so a lookup can tell a real entry
// apart from another row's.
type RowDisplacementTable struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       int
	Entries          []int
	Bounds           []int
	RowDisplacement  []int
}

func GenRowDisplacementTable(orig *OriginalTable, emptyValue int) (*RowDisplacementTable, error) {
	type rowInfo struct {
		rowNum      int
		nonEmptyCol []int
	}

	rows := make([]rowInfo, orig.rowCount)
	for row := 0; row < orig.rowCount; row++ {
		rows[row].rowNum = row
		for col := 0; col < orig.colCount; col++ {
			if orig.entries[row*orig.colCount+col] != emptyValue {
				rows[row].nonEmptyCol = append(rows[row].nonEmptyCol, col)
			}
		}
	}
	// Denser rows are placed first; they are the hardest to fit. The stable
	// sort keeps the placement deterministic among equally dense rows.
	sort.SliceStable(rows, func(i, j int) bool {
		return len(rows[i].nonEmptyCol) > len(rows[j].nonEmptyCol)
	})

	entries := make([]int, len(orig.entries))
	bounds := make([]int, len(orig.entries))
	for i := range entries {
		entries[i] = emptyValue
		bounds[i] = unboundedRow
	}
	displacement := make([]int, orig.rowCount)
	bottom := orig.colCount

	nextDisplacement := 0
	for _, r := range rows {
		if len(r.nonEmptyCol) == 0 {
			continue
		}

		for {
			fits := true
			for _, col := range r.nonEmptyCol {
				if bounds[nextDisplacement+col] != unboundedRow {
					fits = false
					break
				}
			}
			if !fits {
				nextDisplacement++
				continue
			}

			displacement[r.rowNum] = nextDisplacement
			for _, col := range r.nonEmptyCol {
				entries[nextDisplacement+col] = orig.entries[r.rowNum*orig.colCount+col]
				bounds[nextDisplacement+col] = r.rowNum
			}
			bottom = nextDisplacement + orig.colCount
			nextDisplacement++
			break
		}
	}

	return &RowDisplacementTable{
		OriginalRowCount: orig.rowCount,
		OriginalColCount: orig.colCount,
		EmptyValue:       emptyValue,
		Entries:          entries[:bottom],
		Bounds:           bounds[:bottom],
		RowDisplacement:  displacement,
	}, nil
}

func (tab *RowDisplacementTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}
