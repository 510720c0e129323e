package csvtable

import (
	"fmt"
	"strconv"

	"mailmerge/internal/domain"
)

const (
	maxChartColumns = 3
	histogramBins   = 10
)

// Histograms builds distribution chart data for up to the first three
// numeric columns. A column counts as numeric when all of its non-empty
// values parse as numbers. The result is plain data for the display sink.
func Histograms(table *domain.Table) []domain.Histogram {
	var charts []domain.Histogram
	for _, col := range table.Columns {
		if len(charts) == maxChartColumns {
			break
		}
		values, ok := numericValues(table, col)
		if !ok {
			continue
		}
		charts = append(charts, domain.Histogram{Column: col, Bins: binValues(values)})
	}
	return charts
}

func numericValues(table *domain.Table, col string) ([]float64, bool) {
	var values []float64
	for _, row := range table.Rows {
		v := row[col]
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		values = append(values, f)
	}
	return values, len(values) > 0
}

func binValues(values []float64) []domain.HistogramBin {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []domain.HistogramBin{{Label: formatNum(lo), Count: len(values)}}
	}

	width := (hi - lo) / histogramBins
	bins := make([]domain.HistogramBin, histogramBins)
	for i := range bins {
		bins[i].Label = fmt.Sprintf("%s to %s", formatNum(lo+float64(i)*width), formatNum(lo+float64(i+1)*width))
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx == histogramBins {
			idx--
		}
		bins[idx].Count++
	}
	return bins
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
