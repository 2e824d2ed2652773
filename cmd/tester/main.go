// Copyright 2024-2025 colstream
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/colstream/hostagg/pkg/cache"
	"github.com/colstream/hostagg/pkg/chunk"
	"github.com/colstream/hostagg/pkg/colio"
	"github.com/colstream/hostagg/pkg/common"
	"github.com/colstream/hostagg/pkg/hostudf"
	"github.com/colstream/hostagg/pkg/stream"
	"github.com/colstream/hostagg/pkg/util"
)

func init() {
	cobra.OnInitialize(loadConfig)
	initScenarioCmd()
	initParquetCmd()
}

var testerCfg = &util.Config{}

var info = "tester"
var RootCmd = &cobra.Command{
	Use:          "tester",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use tester --help or -h")
	},
}

func loadConfig() {
	viper.SetConfigName("tester")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err == nil {
		testerCfg.Stream.Name = viper.GetString("stream.name")
		testerCfg.Stream.Parallelism = viper.GetInt("stream.parallelism")
		testerCfg.Debug.PrintRequest = viper.GetBool("debug.printRequest")
		testerCfg.Debug.PrintResult = viper.GetBool("debug.printResult")
	}
	if testerCfg.Stream.Name == "" {
		testerCfg.Stream.Name = "tester"
	}
}

// scenario files

type Scenario struct {
	Name    string   `toml:"name"`
	Op      string   `toml:"op"`
	Elem    string   `toml:"elem"`
	Out     string   `toml:"out"`
	Values  []int64  `toml:"values"`
	Nulls   []int    `toml:"nulls"`
	Offsets []int    `toml:"offsets"`
	Labels  []int    `toml:"labels"`
	Policy  string   `toml:"policy"`
	Init    *float64 `toml:"init"`
}

type ScenarioFile struct {
	Scenario []Scenario `toml:"scenario"`
}

func typeFromName(name string) (common.LType, error) {
	switch name {
	case "TINYINT":
		return common.TinyintType(), nil
	case "SMALLINT":
		return common.SmallintType(), nil
	case "INTEGER":
		return common.IntegerType(), nil
	case "", "BIGINT":
		return common.BigintType(), nil
	case "UBIGINT":
		return common.UbigintType(), nil
	case "FLOAT":
		return common.FloatType(), nil
	case "DOUBLE":
		return common.DoubleType(), nil
	case "VARCHAR":
		return common.VarcharType(), nil
	case "BOOLEAN":
		return common.BooleanType(), nil
	default:
		return common.Null(), fmt.Errorf("unknown type name %s", name)
	}
}

func (s *Scenario) buildBundle() (*hostudf.InputBundle, error) {
	elemTyp, err := typeFromName(s.Elem)
	if err != nil {
		return nil, err
	}
	outTyp, err := typeFromName(s.Out)
	if err != nil {
		return nil, err
	}
	var col *chunk.Column
	switch elemTyp.GetInternalType() {
	case common.INT64:
		col = chunk.NewNumericColumn(elemTyp, s.Values, s.Nulls...)
	case common.DOUBLE:
		vals := make([]float64, len(s.Values))
		for i, v := range s.Values {
			vals[i] = float64(v)
		}
		col = chunk.NewNumericColumn(elemTyp, vals, s.Nulls...)
	default:
		return nil, fmt.Errorf("tester scenarios support BIGINT or DOUBLE elements, got %s", elemTyp)
	}

	bundle := hostudf.NewInputBundle()
	switch s.Op {
	case "sum_of_squares_reduce":
		bundle.SetValues(col).SetOutputType(outTyp)
	case "sum_of_squares_segmented":
		policy := hostudf.NullExclude
		if s.Policy == "INCLUDE" {
			policy = hostudf.NullInclude
		}
		bundle.SetValues(col).
			SetOutputType(outTyp).
			SetNullPolicy(policy).
			SetOffsets(s.Offsets)
	case "sum_of_squares_grouped":
		bundle.SetGroupedValues(col).
			SetOffsets(s.Offsets).
			SetGroupLabels(s.Labels)
	default:
		return nil, fmt.Errorf("unknown op %s", s.Op)
	}
	if s.Init != nil {
		init := chunk.NewNumericScalar(outTyp, *s.Init)
		bundle.SetInitValue(init)
	}
	return bundle, nil
}

func builtinScenarios() []Scenario {
	return []Scenario{
		{
			Name:   "whole column reduce",
			Op:     "sum_of_squares_reduce",
			Out:    "BIGINT",
			Values: []int64{0, 1, 2, 3, 4, 5},
		},
		{
			Name:    "segmented exclude",
			Op:      "sum_of_squares_segmented",
			Out:     "BIGINT",
			Values:  []int64{1, 2, 3, 4},
			Offsets: []int{0, 2, 4},
			Policy:  "EXCLUDE",
		},
		{
			Name:    "grouped",
			Op:      "sum_of_squares_grouped",
			Values:  []int64{1, 2, 3},
			Offsets: []int{0, 1, 3},
			Labels:  []int{0, 1},
		},
	}
}

func runScenarios(scenarios []Scenario) error {
	strm := stream.NewStream(testerCfg.Stream.Name, util.GAlloc, testerCfg.Stream.Parallelism)
	defer strm.Close()
	reg := cache.DefaultRegistry()
	results := cache.NewResultCache()

	for i := range scenarios {
		sc := &scenarios[i]
		udf, err := reg.New(sc.Op)
		if err != nil {
			return err
		}
		bundle, err := sc.buildBundle()
		if err != nil {
			return err
		}
		if testerCfg.Debug.PrintRequest {
			fmt.Println(hostudf.Describe(udf, bundle))
		}
		if cached, has := results.Get(sc.Name, udf); has {
			printResult(sc, cached)
			continue
		}
		res, err := udf.Invoke(strm, bundle)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		if err = strm.Synchronize(); err != nil {
			return fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		results.Put(sc.Name, udf, res)
		printResult(sc, res)
	}
	return nil
}

func printResult(sc *Scenario, res *hostudf.Result) {
	if !testerCfg.Debug.PrintResult {
		return
	}
	if res.Scalar != nil {
		util.Info("scenario done",
			zap.String("name", sc.Name),
			zap.String("result", res.Scalar.String()))
		return
	}
	util.Info("scenario done",
		zap.String("name", sc.Name),
		zap.Int("rows", res.Column.Count()),
		zap.Int("nulls", res.Column.NullCount()))
	res.Column.Print2(sc.Name, res.Column.Count())
}

// scenarios cmd

var scenarioPath string

var scenarioInfo = "run aggregation scenarios"
var scenarioCmd = &cobra.Command{
	Use:   "scenarios",
	Short: scenarioInfo,
	Long:  scenarioInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		if scenarioPath == "" {
			return runScenarios(builtinScenarios())
		}
		if !util.FileIsValid(scenarioPath) {
			return fmt.Errorf("scenario file %s does not exist", scenarioPath)
		}
		var file ScenarioFile
		if _, err := toml.DecodeFile(scenarioPath, &file); err != nil {
			return err
		}
		return runScenarios(file.Scenario)
	},
}

func initScenarioCmd() {
	RootCmd.AddCommand(scenarioCmd)
	scenarioCmd.Flags().StringVar(&scenarioPath, "file", "", "toml scenario file. empty runs the builtin set")
}

// parquet cmd

var (
	pqPath string
	pqCol  int
	pqElem string
	pqOut  string
	pqRows int
)

var parquetInfo = "reduce one numeric parquet column"
var parquetCmd = &cobra.Command{
	Use:   "parquet",
	Short: parquetInfo,
	Long:  parquetInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		elemTyp, err := typeFromName(pqElem)
		if err != nil {
			return err
		}
		outTyp, err := typeFromName(pqOut)
		if err != nil {
			return err
		}
		col, err := colio.ReadNumericColumn(pqPath, pqCol, elemTyp, pqRows)
		if err != nil {
			return err
		}
		strm := stream.NewStream(testerCfg.Stream.Name, util.GAlloc, testerCfg.Stream.Parallelism)
		defer strm.Close()

		udf := hostudf.NewSumSquaresReduce()
		bundle := hostudf.NewInputBundle().
			SetValues(col).
			SetOutputType(outTyp)
		if testerCfg.Debug.PrintRequest {
			fmt.Println(hostudf.Describe(udf, bundle))
		}
		res, err := udf.Invoke(strm, bundle)
		if err != nil {
			return err
		}
		if err = strm.Synchronize(); err != nil {
			return err
		}
		util.Info("parquet reduce done",
			zap.String("file", pqPath),
			zap.Int("column", pqCol),
			zap.Int("rows", col.Count()),
			zap.Int("nulls", col.NullCount()),
			zap.String("result", res.Scalar.String()))
		return nil
	},
}

func initParquetCmd() {
	RootCmd.AddCommand(parquetCmd)
	parquetCmd.Flags().StringVar(&pqPath, "file", "", "parquet file path")
	parquetCmd.Flags().IntVar(&pqCol, "column", 0, "column index")
	parquetCmd.Flags().StringVar(&pqElem, "elem", "BIGINT", "element type")
	parquetCmd.Flags().StringVar(&pqOut, "out", "BIGINT", "output type")
	parquetCmd.Flags().IntVar(&pqRows, "rows", util.DefaultVectorSize, "max rows to read")
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		util.Error("tester failed", zap.Error(err))
		os.Exit(1)
	}
}
