// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/verstore/cmd/verstore/cmd"
)

func main() {
	cmd.Execute()
}
