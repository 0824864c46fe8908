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
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/interp/InputParameters"
	"github.com/notargets/interp/utils"
)

type Query1D struct {
	TableFile string
	At        float64
	Single    bool
	NQuery    int
	XMin      float64
	XMax      float64
	SweepSet  bool
	Bounded   bool
	Parallel  int
}

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "Evaluate a one dimensional interpolation table",
	Long: `
Reads a 1D table definition from a YAML file and interpolates it at a
single query point or over a swept range,

interp 1D -I table.yaml --at 1.5`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("1D called")
		q := &Query1D{}
		if q.TableFile, err = cmd.Flags().GetString("tableFile"); err != nil {
			panic(err)
		}
		q.At, _ = cmd.Flags().GetFloat64("at")
		q.Single = cmd.Flags().Changed("at")
		q.NQuery, _ = cmd.Flags().GetInt("nQuery")
		q.XMin, _ = cmd.Flags().GetFloat64("xMin")
		q.XMax, _ = cmd.Flags().GetFloat64("xMax")
		q.SweepSet = cmd.Flags().Changed("xMin") || cmd.Flags().Changed("xMax")
		q.Bounded, _ = cmd.Flags().GetBool("bounded")
		q.Parallel, _ = cmd.Flags().GetInt("parallel")
		Run1D(q)
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("tableFile", "I", "", "YAML file defining the table:\n\t- Interpolant\n\t- Knots\n\t- Values")
	OneDCmd.Flags().Float64("at", 0, "single query coordinate")
	OneDCmd.Flags().IntP("nQuery", "n", 11, "number of points in the swept query range")
	OneDCmd.Flags().Float64("xMin", 0, "start of the query sweep (default: table ArgMin)")
	OneDCmd.Flags().Float64("xMax", 0, "end of the query sweep (default: table ArgMax)")
	OneDCmd.Flags().BoolP("bounded", "b", false, "return 0 outside the table domain instead of extrapolating")
	OneDCmd.Flags().IntP("parallel", "p", 1, "number of goroutines for the swept evaluation")
}

func Run1D(q *Query1D) {
	tp := processTableInput(q.TableFile)
	t, err := tp.Build()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if q.Single {
		var val float64
		if q.Bounded {
			val = t.Evaluate(q.At)
		} else {
			val = t.Lookup(q.At)
		}
		fmt.Printf("f(%8.5f)\t= %10.7f\n", q.At, val)
		return
	}
	xmin, xmax := t.ArgMin(), t.ArgMax()
	if q.SweepSet {
		xmin, xmax = q.XMin, q.XMax
	}
	xs := utils.NewVector(q.NQuery).Linspace(xmin, xmax).RawData()
	var vals []float64
	switch {
	case q.Bounded && q.Parallel > 1:
		vals = t.EvaluateManyParallel(xs, q.Parallel)
	case q.Bounded:
		vals = t.EvaluateMany(xs)
	case q.Parallel > 1:
		vals = t.InterpManyParallel(xs, q.Parallel)
	default:
		vals = t.InterpMany(xs)
	}
	for k, x := range xs {
		fmt.Printf("f(%8.5f)\t= %10.7f\n", x, vals[k])
	}
}

func processTableInput(fileName string) (tp *InputParameters.TableParameters) {
	data := readTableFile(fileName)
	tp = &InputParameters.TableParameters{}
	if err := tp.Parse(data); err != nil {
		panic(err)
	}
	tp.Print()
	return
}

func readTableFile(fileName string) (data []byte) {
	var (
		err error
	)
	if len(fileName) == 0 {
		err = fmt.Errorf("must supply a table definition file (-I, --tableFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Radial Profile"
Interpolant: spline
Knots: [0, 1, 2, 3]
Values: [0, 1, 4, 9]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	if data, err = ioutil.ReadFile(fileName); err != nil {
		panic(err)
	}
	return
}
