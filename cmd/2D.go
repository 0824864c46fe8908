/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/interp/InputParameters"
	"github.com/notargets/interp/table"
	"github.com/notargets/interp/utils"
)

type Query2D struct {
	TableFile string
	X, Y      float64
	Single    bool
	NQuery    int
	Bounded   bool
	Gradient  bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Evaluate a two dimensional interpolation table",
	Long: `
Reads a 2D grid table definition from a YAML file and interpolates it at
a query point or over a swept diagonal, optionally with the analytic
gradient (linear interpolant only),

interp 2D -I grid.yaml -x 0.5 -y 0.5 -g`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("2D called")
		q := &Query2D{}
		if q.TableFile, err = cmd.Flags().GetString("tableFile"); err != nil {
			panic(err)
		}
		q.X, _ = cmd.Flags().GetFloat64("x")
		q.Y, _ = cmd.Flags().GetFloat64("y")
		q.Single = cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
		q.NQuery, _ = cmd.Flags().GetInt("nQuery")
		q.Bounded, _ = cmd.Flags().GetBool("bounded")
		q.Gradient, _ = cmd.Flags().GetBool("gradient")
		Run2D(q)
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("tableFile", "I", "", "YAML file defining the grid table:\n\t- Interpolant\n\t- XKnots, YKnots\n\t- Values (row per X knot)")
	TwoDCmd.Flags().Float64P("x", "x", 0, "x coordinate of a single query")
	TwoDCmd.Flags().Float64P("y", "y", 0, "y coordinate of a single query")
	TwoDCmd.Flags().IntP("nQuery", "n", 11, "number of points swept along the grid diagonal")
	TwoDCmd.Flags().BoolP("bounded", "b", false, "return 0 outside the grid domain instead of extrapolating")
	TwoDCmd.Flags().BoolP("gradient", "g", false, "also report df/dx, df/dy")
}

func Run2D(q *Query2D) {
	data := readTableFile(q.TableFile)
	tp := &InputParameters.Table2DParameters{}
	if err := tp.Parse(data); err != nil {
		panic(err)
	}
	tp.Print()
	t2, err := tp.Build()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if q.Single {
		print2DQuery(t2, q.X, q.Y, q)
		return
	}
	// Sweep the grid diagonal
	xs := utils.NewVector(q.NQuery).Linspace(t2.XMin(), t2.XMax()).RawData()
	ys := utils.NewVector(q.NQuery).Linspace(t2.YMin(), t2.YMax()).RawData()
	for k := range xs {
		print2DQuery(t2, xs[k], ys[k], q)
	}
}

func print2DQuery(t2 *table.Table2D, x, y float64, q *Query2D) {
	var val float64
	if q.Bounded {
		val = t2.Evaluate(x, y)
	} else {
		val = t2.Lookup(x, y)
	}
	fmt.Printf("f(%8.5f, %8.5f)\t= %10.7f", x, y, val)
	if q.Gradient {
		dfdx, dfdy, err := t2.Gradient(x, y)
		switch {
		case errors.Is(err, table.ErrGradientUnsupported):
			fmt.Printf("\tgradient unsupported for %v interp", t2.Interpolant())
		case err != nil:
			panic(err)
		default:
			fmt.Printf("\tdf/dx = %10.7f\tdf/dy = %10.7f", dfdx, dfdy)
		}
	}
	fmt.Printf("\n")
}
