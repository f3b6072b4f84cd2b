/*
Copyright © 2018 the tracervol authors.
This file is part of tracervol.

tracervol is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tracervol is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tracervol.  If not, see <http://www.gnu.org/licenses/>.
*/

package tracervolutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
)

// WriteSeries writes the time series cols to path, one row per time step,
// with a leading Time column holding the time step index. header names the
// columns in cols, which must all have the same length. Files with an
// ".xlsx" extension are written as Excel spreadsheets and all others as CSV.
func WriteSeries(path string, header []string, cols ...[]float64) error {
	if len(header) != len(cols) {
		return fmt.Errorf("tracervol: %d column names for %d columns", len(header), len(cols))
	}
	n := 0
	for i, c := range cols {
		if i == 0 {
			n = len(c)
		} else if len(c) != n {
			return fmt.Errorf("tracervol: column %s has length %d but %s has length %d", header[i], len(c), header[0], n)
		}
	}
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		return writeXLSX(path, header, n, cols)
	}
	return writeCSV(path, header, n, cols)
}

func writeCSV(path string, header []string, n int, cols [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tracervol: creating output file: %v", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"Time"}, header...)); err != nil {
		f.Close()
		return err
	}
	for t := 0; t < n; t++ {
		line := []string{strconv.Itoa(t)}
		for _, c := range cols {
			line = append(line, strconv.FormatFloat(c[t], 'g', -1, 64))
		}
		if err := w.Write(line); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeXLSX(path string, header []string, n int, cols [][]float64) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("tracervol")
	if err != nil {
		return err
	}
	row := sheet.AddRow()
	row.AddCell().SetString("Time")
	for _, h := range header {
		row.AddCell().SetString(h)
	}
	for t := 0; t < n; t++ {
		row = sheet.AddRow()
		row.AddCell().SetInt(t)
		for _, c := range cols {
			row.AddCell().SetFloat(c[t])
		}
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("tracervol: writing output file: %v", err)
	}
	return nil
}
