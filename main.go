// SPDX-License-Identifier: MPL-2.0

package main

import cmd "dockershell-cli/cmd/ds"

func main() {
	cmd.Execute()
}
