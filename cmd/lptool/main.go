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

// lptool inspects and converts LP-format files.
//
//	lptool fmt model.lp              # canonical re-serialization
//	lptool check model.lp            # validate and print statistics
//	lptool encode -e glpk model.lp   # print an engine request
package main

import (
	"os"

	log "github.com/golang/glog"
)

func main() {
	defer log.Flush()
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
