package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/interp/table"
)

// Parameters obtained from the YAML table definition file
type TableParameters struct {
	Title       string    `yaml:"Title"`
	Interpolant string    `yaml:"Interpolant"`
	Knots       []float64 `yaml:"Knots"`
	Values      []float64 `yaml:"Values"`
}

func (tp *TableParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, tp)
}

func (tp *TableParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", tp.Title)
	fmt.Printf("[%s]\t\t\t= Interpolant\n", tp.Interpolant)
	fmt.Printf("[%d]\t\t\t\t= Number of Knots\n", len(tp.Knots))
	if len(tp.Knots) > 0 {
		fmt.Printf("[%8.5f, %8.5f]\t= Domain\n",
			tp.Knots[0], tp.Knots[len(tp.Knots)-1])
	}
}

// Build constructs the Table described by the parameters. The resulting
// table borrows the Knots and Values slices.
func (tp *TableParameters) Build() (t *table.Table, err error) {
	var (
		it table.Interpolant
	)
	if it, err = table.NewInterpolant(tp.Interpolant); err != nil {
		return
	}
	if len(tp.Knots) != len(tp.Values) {
		err = fmt.Errorf("%w: %d knots, %d values",
			table.ErrSizeMismatch, len(tp.Knots), len(tp.Values))
		return
	}
	return table.NewTable(tp.Knots, tp.Values, it)
}

// Parameters for a 2D grid table: Values carries one row per X knot,
// each row holding one value per Y knot.
type Table2DParameters struct {
	Title       string      `yaml:"Title"`
	Interpolant string      `yaml:"Interpolant"`
	XKnots      []float64   `yaml:"XKnots"`
	YKnots      []float64   `yaml:"YKnots"`
	Values      [][]float64 `yaml:"Values"`
}

func (tp *Table2DParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, tp)
}

func (tp *Table2DParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", tp.Title)
	fmt.Printf("[%s]\t\t\t= Interpolant\n", tp.Interpolant)
	fmt.Printf("[%d x %d]\t\t\t= Grid Dimensions\n",
		len(tp.XKnots), len(tp.YKnots))
}

// Build constructs the Table2D described by the parameters, flattening
// the row-per-X-knot Values into the row-major grid the table borrows.
func (tp *Table2DParameters) Build() (t2 *table.Table2D, err error) {
	var (
		it     table.Interpolant
		nx, ny = len(tp.XKnots), len(tp.YKnots)
	)
	if it, err = table.NewInterpolant(tp.Interpolant); err != nil {
		return
	}
	if len(tp.Values) != nx {
		err = fmt.Errorf("%w: %d value rows for %d X knots",
			table.ErrSizeMismatch, len(tp.Values), nx)
		return
	}
	vals := make([]float64, 0, nx*ny)
	for i, row := range tp.Values {
		if len(row) != ny {
			err = fmt.Errorf("%w: value row %d has %d entries for %d Y knots",
				table.ErrSizeMismatch, i, len(row), ny)
			return
		}
		vals = append(vals, row...)
	}
	return table.NewTable2D(tp.XKnots, tp.YKnots, vals, it)
}
