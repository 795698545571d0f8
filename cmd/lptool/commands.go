// Copyright 2024 The lp-model Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DominikPeters/lp-model/lpmodel"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lptool",
		Short:         "Inspect and convert LP-format optimization models",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newFmtCommand(), newCheckCommand(), newEncodeCommand())
	return root
}

// readModel loads an LP file (or stdin for "-") into a fresh model.
func readModel(path string) (*lpmodel.Model, error) {
	var src []byte
	var err error
	if path == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	m := lpmodel.NewModel()
	if err := m.ReadLP(string(src)); err != nil {
		return nil, err
	}
	log.V(1).Infof("parsed %d variables, %d constraints from %s", m.NumVars(), m.NumConstraints(), path)
	return m, nil
}

func newFmtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt FILE",
		Short: "Parse a model and print its canonical LP serialization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readModel(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), m.WriteLP())
			return nil
		},
	}
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a model and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readModel(args[0])
			if err != nil {
				return err
			}
			var integers, binaries int
			for _, v := range m.Vars() {
				switch v.Kind() {
				case lpmodel.Integer:
					integers++
				case lpmodel.Binary:
					binaries++
				}
			}
			quadratic := m.Objective().IsQuadratic()
			for _, c := range m.Constraints() {
				quadratic = quadratic || c.LHS().IsQuadratic()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sense:       %s\n", m.Sense())
			fmt.Fprintf(out, "variables:   %d (%d integer, %d binary)\n", m.NumVars(), integers, binaries)
			fmt.Fprintf(out, "constraints: %d\n", m.NumConstraints())
			fmt.Fprintf(out, "quadratic:   %t\n", quadratic)
			return nil
		},
	}
}

func newEncodeCommand() *cobra.Command {
	var engine string
	cmd := &cobra.Command{
		Use:   "encode FILE",
		Short: "Print the engine request for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readModel(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch engine {
			case "glpk":
				req, err := m.EncodeGLPK()
				if err != nil {
					return err
				}
				return printJSON(out, req)
			case "jslp":
				req, err := m.EncodeJSLP()
				if err != nil {
					return err
				}
				return printJSON(out, req)
			case "highs":
				fmt.Fprint(out, m.WriteLP())
				return nil
			}
			return errors.Errorf("unknown engine %q (want glpk, jslp, or highs)", engine)
		},
	}
	cmd.Flags().StringVarP(&engine, "engine", "e", "glpk", "target engine schema: glpk, jslp, or highs")
	return cmd
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding request")
}
